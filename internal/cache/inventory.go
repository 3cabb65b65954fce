package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	NoteKeyPrefix = "note:%d"
	UserKeyPrefix = "user:%d"
)

const (
	// NoteTTL bounds how stale an anonymously-read public note may be.
	NoteTTL = 5 * time.Minute
	UserTTL = 5 * time.Minute
)

func NoteKey(noteID uint) string {
	return fmt.Sprintf(NoteKeyPrefix, noteID)
}

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateNote(ctx context.Context, noteID uint) {
	Invalidate(ctx, NoteKey(noteID))
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}
