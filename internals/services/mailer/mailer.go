package mailer

// Message: satu email notifikasi (plain + html).
type Message struct {
	ToName    string
	ToAddress string
	Subject   string
	TextBody  string
	HTMLBody  string
}

// Sender mengirim notifikasi email. Kegagalan kirim TIDAK boleh menggagalkan
// operasi utama — pemanggil cukup me-log error yang dikembalikan.
type Sender interface {
	Send(msg Message) error
}
