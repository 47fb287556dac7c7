package s3blob

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/abrahamrubi0/bettrack/internal/domain"
)

// Archiver uploads each cycle's resolved settlements as one JSON object,
// partitioned by date:
//
//	settlements/2026-08-23/<run-id>.json
//
// Notifications remain the delivery channel; the archive is the audit trail
// for reconciling what was sent.
type Archiver struct {
	client *Client
}

// NewArchiver creates an Archiver writing through the given client.
func NewArchiver(client *Client) *Archiver {
	return &Archiver{client: client}
}

// Archive uploads the settlements under the given run key. Empty batches are
// skipped without touching the store.
func (a *Archiver) Archive(ctx context.Context, key string, settlements []domain.Settlement) error {
	if len(settlements) == 0 {
		return nil
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(settlements); err != nil {
		return fmt.Errorf("s3blob: encode settlements: %w", err)
	}

	path := ArchivePath(key, time.Now().UTC())
	_, err := a.client.s3.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.client.bucket),
		Key:         aws.String(path),
		Body:        bytes.NewReader(buf.Bytes()),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("s3blob: put object %s: %w", path, err)
	}
	return nil
}

// ArchivePath builds the object key for a run's settlement batch.
func ArchivePath(runKey string, at time.Time) string {
	return fmt.Sprintf("settlements/%s/%s.json", at.Format("2006-01-02"), runKey)
}

var _ domain.SettlementArchiver = (*Archiver)(nil)
