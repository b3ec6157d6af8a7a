// Package cli implements the interactive FileVault command-line client.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/filevault/internal/client/api"
	"github.com/dmitrijs2005/filevault/internal/client/config"
	"github.com/dmitrijs2005/filevault/internal/client/session"
)

type App struct {
	config  *config.Config
	api     *api.Client
	session *session.Session
	reader  *bufio.Reader
	out     *os.File
}

func NewApp(c *config.Config) (*App, error) {

	s, err := session.Load(c.SessionFile)
	if err != nil {
		return nil, fmt.Errorf("session load error: %w", err)
	}

	apiClient := api.NewClient(c.ServerAddr)
	if s.Active() {
		apiClient.SetToken(s.Token)
	}

	return &App{
		config:  c,
		api:     apiClient,
		session: s,
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
	}, nil
}

func (a *App) isLoggedIn() bool {
	return a.session.Active()
}

func (a *App) Run(ctx context.Context) {
	a.Root(ctx)
}
