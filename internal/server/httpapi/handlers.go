package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/dmitrijs2005/filevault/internal/common"
)

// multipartOverhead is extra room on top of the file size limit for the
// multipart framing and the other form fields.
const multipartOverhead = 1 << 20

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "OK",
		"message": "Server is running",
	})
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "All fields are required")
		return
	}

	user, token, err := s.users.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorValidation):
			writeError(w, http.StatusBadRequest, "All fields are required")
		case errors.Is(err, common.ErrorAlreadyExists):
			writeError(w, http.StatusBadRequest, "User already exists")
		default:
			writeError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "User created successfully",
		"token":   token,
		"user":    userToPayload(user),
	})
}

// loginRequest carries a username-or-email in the username field, matching
// what the client sends.
type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Username and password are required")
		return
	}

	user, token, err := s.users.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorValidation):
			writeError(w, http.StatusBadRequest, "Username and password are required")
		case errors.Is(err, common.ErrorUnauthorized):
			writeError(w, http.StatusUnauthorized, "Invalid credentials")
		default:
			writeError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Login successful",
		"token":   token,
		"user":    userToPayload(user),
	})
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := userFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Access token required")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadSize+multipartOverhead)

	part, header, err := r.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, http.StatusRequestEntityTooLarge, "File too large")
			return
		}
		writeError(w, http.StatusBadRequest, "No file uploaded")
		return
	}
	defer part.Close()

	file, err := s.files.Upload(r.Context(), userID, header.Filename, header.Header.Get("Content-Type"), part)
	if err != nil {
		if errors.Is(err, common.ErrPayloadTooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "File too large")
			return
		}
		writeError(w, http.StatusInternalServerError, "File upload failed")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "File uploaded successfully",
		"file":    fileToPayload(file),
	})
}

func (s *Server) handleListFiles(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := userFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Access token required")
		return
	}

	files, err := s.files.List(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to retrieve files")
		return
	}

	payload := make([]filePayload, 0, len(files))
	for _, f := range files {
		payload = append(payload, fileToPayload(f))
	}
	writeJSON(w, http.StatusOK, map[string]any{"files": payload})
}

func fileIDFromRequest(r *http.Request) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := userFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Access token required")
		return
	}

	fileID, err := fileIDFromRequest(r)
	if err != nil {
		writeError(w, http.StatusNotFound, "File not found")
		return
	}

	file, rc, err := s.files.Download(r.Context(), userID, fileID)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorForbidden):
			writeError(w, http.StatusForbidden, "Access denied")
		case errors.Is(err, common.ErrorNotFound):
			writeError(w, http.StatusNotFound, "File not found")
		default:
			writeError(w, http.StatusInternalServerError, "File download failed")
		}
		return
	}
	defer rc.Close()

	contentType := file.MimeType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	// FormatMediaType emits the RFC 5987 filename* parameter for non-ASCII
	// names, so Hebrew originals survive the round trip.
	disposition := mime.FormatMediaType("attachment", map[string]string{"filename": file.OriginalName})
	if disposition == "" {
		disposition = "attachment"
	}
	w.Header().Set("Content-Disposition", disposition)
	w.Header().Set("Content-Length", strconv.FormatInt(file.Size, 10))

	if _, err := io.Copy(w, rc); err != nil {
		s.logger.Warn(r.Context(), "download interrupted", "file_id", fileID, "error", err.Error())
	}
}

func (s *Server) handleDeleteFile(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := userFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Access token required")
		return
	}

	fileID, err := fileIDFromRequest(r)
	if err != nil {
		writeError(w, http.StatusNotFound, "File not found")
		return
	}

	if err := s.files.Delete(r.Context(), userID, fileID); err != nil {
		switch {
		case errors.Is(err, common.ErrorForbidden):
			writeError(w, http.StatusForbidden, "Access denied")
		case errors.Is(err, common.ErrorNotFound):
			writeError(w, http.StatusNotFound, "File not found")
		default:
			writeError(w, http.StatusInternalServerError, "File deletion failed")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "File deleted successfully"})
}
