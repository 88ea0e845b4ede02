package auth

import (
	"bytes"
	"crypto/cipher"
	"encoding/binary"
	"io"
	"net"
	"sync"

	"golang.org/x/crypto/chacha20poly1305"
)

// Conn frames every Write as length[4] | nonce[12] | ciphertext and
// decrypts frames on Read. Nonces are a per-direction counter.
type Conn struct {
	net.Conn
	r    io.Reader
	aead cipher.AEAD

	wmu     sync.Mutex
	sendCtr uint64

	rmu     sync.Mutex
	recvBuf bytes.Buffer
}

const maxPacketSize = 2 * 1024 * 1024

// WrapConn encrypts conn with sessionKey. Reads come from r when it is not
// nil, so bytes already buffered during the handshake are not lost.
func WrapConn(conn net.Conn, r io.Reader, sessionKey []byte) (*Conn, error) {
	aead, err := chacha20poly1305.New(sessionKey)
	if err != nil {
		return nil, err
	}
	if r == nil {
		r = conn
	}
	return &Conn{Conn: conn, r: r, aead: aead}, nil
}

func (c *Conn) Write(p []byte) (int, error) {
	c.wmu.Lock()
	defer c.wmu.Unlock()

	nonce := make([]byte, chacha20poly1305.NonceSize)
	binary.BigEndian.PutUint64(nonce[4:], c.sendCtr)
	c.sendCtr++

	ct := c.aead.Seal(nil, nonce, p, nil)
	pkt := make([]byte, 4, 4+len(nonce)+len(ct))
	binary.BigEndian.PutUint32(pkt, uint32(len(nonce)+len(ct)))
	pkt = append(pkt, nonce...)
	pkt = append(pkt, ct...)

	if _, err := c.Conn.Write(pkt); err != nil {
		return 0, err
	}
	return len(p), nil
}

func (c *Conn) Read(p []byte) (int, error) {
	c.rmu.Lock()
	defer c.rmu.Unlock()

	for c.recvBuf.Len() == 0 {
		var hdr [4]byte
		if _, err := io.ReadFull(c.r, hdr[:]); err != nil {
			return 0, err
		}
		length := binary.BigEndian.Uint32(hdr[:])
		if length < chacha20poly1305.NonceSize || length > maxPacketSize {
			return 0, io.ErrUnexpectedEOF
		}
		pkt := make([]byte, length)
		if _, err := io.ReadFull(c.r, pkt); err != nil {
			return 0, err
		}
		pt, err := c.aead.Open(nil, pkt[:chacha20poly1305.NonceSize], pkt[chacha20poly1305.NonceSize:], nil)
		if err != nil {
			return 0, err
		}
		c.recvBuf.Write(pt)
	}
	return c.recvBuf.Read(p)
}
