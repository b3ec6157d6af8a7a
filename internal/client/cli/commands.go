package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/filevault/internal/client/api"
	"github.com/dmitrijs2005/filevault/internal/client/session"
)

func (a *App) Register(ctx context.Context) {
	username, err := GetSimpleText(a.reader, "Username", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "Error: %v\n", err)
		return
	}
	email, err := GetSimpleText(a.reader, "Email", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "Error: %v\n", err)
		return
	}
	password, err := GetPassword(a.out)
	if err != nil {
		fmt.Fprintf(a.out, "Error: %v\n", err)
		return
	}

	result, err := a.api.Register(ctx, username, email, string(password))
	if err != nil {
		fmt.Fprintf(a.out, "Registration failed: %v\n", err)
		return
	}

	a.storeSession(result)
	fmt.Fprintf(a.out, "Registered as %s\n", result.User.Username)
}

func (a *App) Login(ctx context.Context) {
	login, err := GetSimpleText(a.reader, "Username or email", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "Error: %v\n", err)
		return
	}
	password, err := GetPassword(a.out)
	if err != nil {
		fmt.Fprintf(a.out, "Error: %v\n", err)
		return
	}

	result, err := a.api.Login(ctx, login, string(password))
	if err != nil {
		fmt.Fprintf(a.out, "Login failed: %v\n", err)
		return
	}

	a.storeSession(result)
	fmt.Fprintf(a.out, "Logged in as %s\n", result.User.Username)
}

func (a *App) storeSession(result *api.AuthResult) {
	a.session = &session.Session{Token: result.Token, User: result.User}
	a.api.SetToken(result.Token)
	if err := session.Save(a.config.SessionFile, a.session); err != nil {
		fmt.Fprintf(a.out, "Warning: session not saved: %v\n", err)
	}
}

func (a *App) Logout(ctx context.Context) {
	a.session = &session.Session{}
	a.api.SetToken("")
	if err := session.Clear(a.config.SessionFile); err != nil {
		fmt.Fprintf(a.out, "Warning: session file not removed: %v\n", err)
	}
	fmt.Fprintln(a.out, "Logged out")
}

func (a *App) List(ctx context.Context) {
	files, err := a.api.List(ctx)
	if err != nil {
		fmt.Fprintf(a.out, "Error: %v\n", err)
		return
	}
	if len(files) == 0 {
		fmt.Fprintln(a.out, "No files uploaded yet")
		return
	}
	for _, f := range files {
		fmt.Fprintf(a.out, "%d\t%s\t%d bytes\t%s\t%s\n",
			f.ID, f.OriginalName, f.Size, f.MimeType, f.UploadedAt.Format("2006-01-02 15:04"))
	}
}

func (a *App) Upload(ctx context.Context, path string) {
	file, err := a.api.Upload(ctx, path)
	if err != nil {
		fmt.Fprintf(a.out, "Upload failed: %v\n", err)
		return
	}
	fmt.Fprintf(a.out, "Uploaded %s (id %d)\n", file.OriginalName, file.ID)
}

func (a *App) Download(ctx context.Context, idArg string) {
	id, err := strconv.ParseInt(idArg, 10, 64)
	if err != nil {
		fmt.Fprintln(a.out, "Usage: download <id>")
		return
	}

	dest, err := a.api.Download(ctx, id, a.config.DownloadDir)
	if err != nil {
		fmt.Fprintf(a.out, "Download failed: %v\n", err)
		return
	}
	fmt.Fprintf(a.out, "Saved to %s\n", dest)
}

func (a *App) Delete(ctx context.Context, idArg string) {
	id, err := strconv.ParseInt(idArg, 10, 64)
	if err != nil {
		fmt.Fprintln(a.out, "Usage: delete <id>")
		return
	}

	if err := a.api.Delete(ctx, id); err != nil {
		fmt.Fprintf(a.out, "Delete failed: %v\n", err)
		return
	}
	fmt.Fprintln(a.out, "Deleted")
}

func (a *App) Health(ctx context.Context) {
	if err := a.api.Health(ctx); err != nil {
		fmt.Fprintf(a.out, "Server unreachable: %v\n", err)
		return
	}
	fmt.Fprintln(a.out, "Server is running")
}
