package main

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/mdobak/go-xerrors"

	"github.com/yatube/yatube/internal/cache"
	"github.com/yatube/yatube/internal/core"
)

// authenticate resolves an optional Authorization token into the request
// context. Requests without a token pass through anonymously.
func (app *application) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Add("Vary", "Authorization")

		authorization := r.Header.Get("Authorization")
		if authorization != "" {
			authorizationParts := strings.Split(authorization, " ")
			if len(authorizationParts) != 2 || authorizationParts[0] != "Token" {
				app.invalidAuthenticationTokenResponse(w, r, xerrors.New("Authentication header must be in the format 'Token <token>'"))
				return
			}

			token := authorizationParts[1]
			claim, err := app.auth.Authenticate(token)
			if err != nil {
				app.invalidAuthenticationTokenResponse(w, r, err)
				return
			}

			user, err := app.core.GetUserByEmail(r.Context(), claim.Email)
			if err != nil {
				if errors.Is(err, core.NoRecordFound) {
					app.notFoundResponse(w, r)
					return
				}
				app.internalErrorResponse(w, r, err)
				return
			}

			user.Token = token
			app.auth.CacheAuthenticatedUser(user)
			r = app.auth.SetAuthenticatedUser(r, user)
		}

		next.ServeHTTP(w, r)
	})
}

// requireAuthenticatedUser sends anonymous callers to the login page with a
// return path, mirroring a login_required redirect.
func (app *application) requireAuthenticatedUser(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !app.auth.IsUserAuthenticated(r) {
			app.loginRedirect(w, r)
			return
		}
		next(w, r)
	}
}

func (app *application) recoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				w.Header().Set("Connection", "close")
				app.internalErrorResponse(w, r, fmt.Errorf("%s", err))
			}
		}()
		next.ServeHTTP(w, r)
	})
}

type cachedResponseWriter struct {
	http.ResponseWriter
	status int
	buf    bytes.Buffer
}

func (cw *cachedResponseWriter) WriteHeader(status int) {
	cw.status = status
	cw.ResponseWriter.WriteHeader(status)
}

func (cw *cachedResponseWriter) Write(b []byte) (int, error) {
	cw.buf.Write(b)
	return cw.ResponseWriter.Write(b)
}

// cachePage serves GET responses from the page cache keyed by request URI.
// Entries go stale only through TTL expiry or an explicit cache clear; writes
// elsewhere in the system do not invalidate them.
func (app *application) cachePage(ttl time.Duration, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			next(w, r)
			return
		}

		key := r.URL.RequestURI()
		entry, found, err := app.cache.Get(r.Context(), key)
		if err != nil {
			app.logger.Error("page cache get failed", "key", key, "error", err)
		}
		if found {
			w.Header().Set("Content-Type", entry.ContentType)
			w.WriteHeader(entry.Status)
			if _, err := w.Write(entry.Body); err != nil {
				app.logger.Error(err.Error())
			}
			return
		}

		cw := &cachedResponseWriter{ResponseWriter: w, status: http.StatusOK}
		next(cw, r)

		if cw.status == http.StatusOK {
			entry := &cache.Entry{
				Status:      cw.status,
				ContentType: cw.Header().Get("Content-Type"),
				Body:        cw.buf.Bytes(),
			}
			if err := app.cache.Set(r.Context(), key, entry, ttl); err != nil {
				app.logger.Error("page cache set failed", "key", key, "error", err)
			}
		}
	}
}
