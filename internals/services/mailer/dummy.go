package mailer

import (
	"errors"
	"sync"
)

// DummySender menampung pesan di memori — dipakai saat SENDGRID_API_KEY kosong
// dan di test. FailNext memaksa Send berikutnya gagal (simulasi delivery failure).
type DummySender struct {
	mu       sync.Mutex
	Sent     []Message
	FailNext bool
}

var _ Sender = (*DummySender)(nil)

func NewDummySender() *DummySender {
	return &DummySender{}
}

func (d *DummySender) Send(msg Message) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.FailNext {
		d.FailNext = false
		return errors.New("dummy mailer: simulated delivery failure")
	}
	d.Sent = append(d.Sent, msg)
	return nil
}

// SentCount: jumlah pesan yang "terkirim" (untuk assertions di test).
func (d *DummySender) SentCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.Sent)
}
