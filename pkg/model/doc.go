// Package model defines the data shapes returned by Xphere RPC nodes: peer
// listings and round (chain head) information.
//
// Nodes are operated independently and do not agree on number encodings, so
// heights and timestamps decode from JSON numbers as well as numeric strings,
// and peers decode from bare host strings as well as {host, address} objects.
package model
