// Package derive computes the contract addresses a salt ultimately deploys
// to, layered on top of the raw candidate digest the kernel produces. It
// follows the CreateX factory scheme: the caller's salt is first transformed
// into a guarded salt, then fed through CREATE2 or the CREATE3 proxy hop.
package derive

import (
	"github.com/ethvanity/crunch/address"
	"github.com/ethvanity/crunch/crypto"
	"github.com/ethvanity/crunch/types"
)

// SaltVariant selects the factory's salt protection mode.
type SaltVariant int

const (
	// Random applies no protection; the factory still re-hashes the salt.
	Random SaltVariant = iota
	// Sender binds the salt to the calling address.
	Sender
	// Crosschain binds the salt to the chain id.
	Crosschain
	// CrosschainSender binds the salt to both.
	CrosschainSender
)

// Guard is the salt protection configuration of one search.
type Guard struct {
	Variant SaltVariant
	Caller  address.Address
	ChainID types.Hash // 32-byte big-endian chain id
}

// Salt transforms a raw salt into the guarded salt the factory actually
// deploys with.
func (g Guard) Salt(salt types.Salt) types.Hash {
	switch g.Variant {
	case Sender:
		var caller types.Hash
		copy(caller[types.HashSize-address.Size:], g.Caller[:])
		return crypto.Keccak256Var(caller[:], salt[:])
	case Crosschain:
		return crypto.Keccak256Var(g.ChainID[:], salt[:])
	case CrosschainSender:
		var caller types.Hash
		copy(caller[types.HashSize-address.Size:], g.Caller[:])
		return crypto.Keccak256Var(caller[:], g.ChainID[:], salt[:])
	default:
		return crypto.Keccak256(salt[:])
	}
}

// Create2 derives the CREATE2 address for a deployer, guarded salt and init
// code hash: keccak256(0xff || deployer || salt || initCodeHash)[12:].
func Create2(deployer address.Address, salt, initCodeHash types.Hash) address.Address {
	var buf [1 + address.Size + 2*types.HashSize]byte
	buf[0] = 0xff
	copy(buf[1:], deployer[:])
	copy(buf[1+address.Size:], salt[:])
	copy(buf[1+address.Size+types.HashSize:], initCodeHash[:])
	return address.FromDigest(crypto.Keccak256(buf[:]))
}

// proxyInitCode is the minimal CREATE3 proxy contract.
var proxyInitCode = []byte{
	0x67, 0x36, 0x3d, 0x3d, 0x37, 0x36, 0x3d, 0x34,
	0xf0, 0x3d, 0x52, 0x60, 0x08, 0x60, 0x18, 0xf3,
}

// ProxyInitCodeHash is keccak256 of the CREATE3 proxy init code, the fixed
// init code hash of the proxy hop.
var ProxyInitCodeHash = crypto.Keccak256(proxyInitCode)

// Create3 derives the CREATE3 address: the proxy is deployed via CREATE2
// with the fixed proxy init code, then the child is the proxy's first
// CREATE, keccak256(0xd6 0x94 || proxy || 0x01)[12:].
func Create3(deployer address.Address, salt types.Hash) address.Address {
	proxy := Create2(deployer, salt, ProxyInitCodeHash)

	var buf [2 + address.Size + 1]byte
	buf[0] = 0xd6 // rlp: list, 22 bytes
	buf[1] = 0x94 // rlp: 20-byte string
	copy(buf[2:], proxy[:])
	buf[len(buf)-1] = 0x01 // deployer nonce
	return address.FromDigest(crypto.Keccak256(buf[:]))
}
