// Package attr holds slog attribute helpers shared by services and handlers.
package attr

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

func String(key, value string) slog.Attr { return slog.String(key, value) }

func Int(key string, value int) slog.Attr { return slog.Int(key, value) }

func Bool(key string, value bool) slog.Attr { return slog.Bool(key, value) }

func Any(key string, value any) slog.Attr { return slog.Any(key, value) }

func Duration(key string, value time.Duration) slog.Attr { return slog.Duration(key, value) }

func Time(key string, value time.Time) slog.Attr { return slog.Time(key, value) }

// UUID logs an id as its canonical string form.
func UUID(key string, value uuid.UUID) slog.Attr { return slog.String(key, value.String()) }

// Error logs err under the "error" key. A nil error logs an empty string.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String("error", "")
	}
	return slog.String("error", err.Error())
}

// GameID and PlayerID tag records with the identifiers most log lines care about.
func GameID(id uuid.UUID) slog.Attr   { return UUID("game_id", id) }
func PlayerID(id uuid.UUID) slog.Attr { return UUID("player_id", id) }
func UserID(id uuid.UUID) slog.Attr   { return UUID("user_id", id) }

// ExtractCorrelationID returns the request id assigned by the router, if any.
func ExtractCorrelationID(ctx context.Context) slog.Attr {
	return slog.String("correlation_id", middleware.GetReqID(ctx))
}
