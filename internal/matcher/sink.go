// --------------------------------------------------------------------------------
// Author: Thomas F McGeehan V
//
// This file is part of a software project developed by Thomas F McGeehan V.
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.
//
// For more information about the MIT License, please visit:
// https://opensource.org/licenses/MIT
//
// Acknowledgment appreciated but not required.
// --------------------------------------------------------------------------------

package matcher

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// FeedbackEvent is the audit record of one feedback call.
type FeedbackEvent struct {
	Name    string
	Phone   string
	Address string
	Area    string
	PlaceID string
	Correct bool
	At      time.Time
}

// FeedbackSink durably logs feedback events for audit and analytics. Writes
// are fire-and-forget: the engine never reads them back and never blocks on
// or fails because of the sink.
type FeedbackSink interface {
	Record(ctx context.Context, ev FeedbackEvent) error
}

// NoopSink discards events. It is the default when no database is configured.
type NoopSink struct{}

func (NoopSink) Record(context.Context, FeedbackEvent) error { return nil }

// PostgresSink appends feedback events to the feedback_events table.
type PostgresSink struct {
	pool *pgxpool.Pool
}

func NewPostgresSink(pool *pgxpool.Pool) *PostgresSink {
	return &PostgresSink{pool: pool}
}

func (s *PostgresSink) Record(ctx context.Context, ev FeedbackEvent) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO feedback_events (name, phone, address, area, place_id, correct, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		ev.Name, ev.Phone, ev.Address, ev.Area, ev.PlaceID, ev.Correct, ev.At)
	return err
}
