// Package ckks implements the encode-encrypt core of a CKKS
// (Cheon-Kim-Kim-Song) homomorphic encryption client for
// memory-constrained devices.
//
// The package turns a vector of real-valued plaintext slots into a
// ciphertext (a pair of residue polynomials per prime in an RNS modulus
// chain), under either a symmetric (secret-key) or asymmetric
// (public-key) scheme. Ciphertext arithmetic, decryption, key-switching
// and modulus-chain generation live elsewhere; this package only
// encodes and encrypts.
package ckks
