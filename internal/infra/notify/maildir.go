package notify

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/emersion/go-message/mail"
	"github.com/google/uuid"

	"github.com/runoshun/todo/internal/domain"
)

// Maildir drops each reminder as a message into the new/ folder of a
// local Maildir, where any mail reader picks it up.
type Maildir struct {
	now  func() time.Time
	root string
	from mail.Address
}

// NewMaildir returns a Maildir backend delivering under root.
func NewMaildir(root string) *Maildir {
	return &Maildir{
		root: root,
		now:  time.Now,
		from: mail.Address{Name: domain.AppName, Address: domain.AppName + "@localhost"},
	}
}

// Notify delivers one message.
func (m *Maildir) Notify(_ context.Context, title, body string) error {
	for _, sub := range []string{"tmp", "new", "cur"} {
		if err := os.MkdirAll(filepath.Join(m.root, sub), 0o700); err != nil {
			return fmt.Errorf("create maildir: %w", err)
		}
	}

	msg, err := m.compose(title, body)
	if err != nil {
		return err
	}

	name := fmt.Sprintf("%d.%s.%s", m.now().Unix(), uuid.NewString(), domain.AppName)
	tmp := filepath.Join(m.root, "tmp", name)
	if err := os.WriteFile(tmp, msg, 0o600); err != nil {
		return fmt.Errorf("write message: %w", err)
	}
	if err := os.Rename(tmp, filepath.Join(m.root, "new", name)); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("deliver message: %w", err)
	}
	return nil
}

func (m *Maildir) compose(title, body string) ([]byte, error) {
	var h mail.Header
	h.SetDate(m.now())
	h.SetAddressList("From", []*mail.Address{&m.from})
	h.SetAddressList("To", []*mail.Address{&m.from})
	h.SetSubject(title)
	h.SetContentType("text/plain", map[string]string{"charset": "utf-8"})
	if err := h.GenerateMessageID(); err != nil {
		return nil, fmt.Errorf("generate message id: %w", err)
	}

	var buf bytes.Buffer
	w, err := mail.CreateSingleInlineWriter(&buf, h)
	if err != nil {
		return nil, fmt.Errorf("create message: %w", err)
	}
	if _, err := io.WriteString(w, body+"\n"); err != nil {
		return nil, fmt.Errorf("write body: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("close message: %w", err)
	}
	return buf.Bytes(), nil
}
