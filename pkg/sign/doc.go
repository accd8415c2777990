// Package sign derives Ed25519 identities and signs values for the Xphere
// network.
//
// A private key is the 32 byte Ed25519 seed written as 64 hex characters. The
// public key is re-derived from the seed on every call and an address is the
// id-hash (see enc.IDHash) of the public key's hex form. Signatures cover the
// canonical string of a value (see enc.String).
//
// Requests and transactions are sent inside an Envelope:
//
//	env, err := sign.SignedTransaction(enc.Object{
//		{Key: "type", Value: "Send"},
//		{Key: "to", Value: to},
//		{Key: "amount", Value: "1000"},
//	}, privateKey)
//
// The envelope stamps the payload with the signer's address and a timestamp
// and signs the payload's transaction hash (enc.TxHash).
package sign
