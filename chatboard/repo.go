// Package chatboard stores the member chat/forum messages per channel.
package chatboard

import (
	"context"
	"time"
)

// MaxBodyLength caps a single message body.
const MaxBodyLength = 4000

type Message struct {
	ID        string    `json:"id"`
	Channel   string    `json:"channel"`
	Author    string    `json:"author"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"createdAt"`
}

type Repo interface {
	Append(ctx context.Context, message Message) error
	List(ctx context.Context, channel string, limit int) ([]Message, error)
}
