package solana

import (
	"crypto/ed25519"
	"encoding/binary"
	"fmt"
)

// systemProgramID is the all-zero address of the native system program.
var systemProgramID [32]byte

// systemTransferIndex is the system program's instruction tag for Transfer.
const systemTransferIndex = 2

// buildTransferTx serializes a signed legacy transaction carrying a single
// system-program transfer. Layout: signature count, signatures, then the
// message (header, account keys, recent blockhash, instructions) with all
// variable lengths encoded as compact-u16.
func buildTransferTx(from ed25519.PrivateKey, to [32]byte, lamports uint64, recentBlockhash [32]byte) ([]byte, error) {
	pub, ok := from.Public().(ed25519.PublicKey)
	if !ok || len(pub) != ed25519.PublicKeySize {
		return nil, fmt.Errorf("invalid signing key")
	}
	var fromKey [32]byte
	copy(fromKey[:], pub)

	// Instruction data: u32 tag followed by u64 lamports, little endian.
	data := make([]byte, 12)
	binary.LittleEndian.PutUint32(data[0:4], systemTransferIndex)
	binary.LittleEndian.PutUint64(data[4:12], lamports)

	var msg []byte
	// Header: one required signature, no read-only signed accounts, one
	// read-only unsigned account (the system program).
	msg = append(msg, 1, 0, 1)
	msg = appendCompactU16(msg, 3)
	msg = append(msg, fromKey[:]...)
	msg = append(msg, to[:]...)
	msg = append(msg, systemProgramID[:]...)
	msg = append(msg, recentBlockhash[:]...)
	msg = appendCompactU16(msg, 1)
	msg = append(msg, 2) // program id index
	msg = appendCompactU16(msg, 2)
	msg = append(msg, 0, 1) // from, to
	msg = appendCompactU16(msg, len(data))
	msg = append(msg, data...)

	signature := ed25519.Sign(from, msg)

	var tx []byte
	tx = appendCompactU16(tx, 1)
	tx = append(tx, signature...)
	tx = append(tx, msg...)
	return tx, nil
}

func appendCompactU16(b []byte, v int) []byte {
	for {
		c := byte(v & 0x7f)
		v >>= 7
		if v == 0 {
			return append(b, c)
		}
		b = append(b, c|0x80)
	}
}
