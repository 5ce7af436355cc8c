package todo

// Cipherer is the confidentiality collaborator applied to todo titles and
// comments: encrypt before storage, decrypt on every read path that returns
// todos to a caller. Decrypt must fail loudly on malformed ciphertext;
// callers never render undecryptable text as if it were valid.
type Cipherer interface {
	Encrypt(plaintext string) (string, error)
	Decrypt(ciphertext string) (string, error)
}
