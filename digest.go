package tail

import (
	"hash"

	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multihash"
)

type digester struct {
	code uint64
	h    hash.Hash
}

func newDigester(code uint64) (*digester, error) {
	h, err := multihash.GetHasher(code)
	if err != nil {
		return nil, err
	}
	return &digester{code: code, h: h}, nil
}

func (d *digester) Write(p []byte) (int, error) {
	return d.h.Write(p)
}

// cid returns the content identifier of everything written so far.
func (d *digester) cid() (cid.Cid, error) {
	mh, err := multihash.Encode(d.h.Sum(nil), d.code)
	if err != nil {
		return cid.Undef, err
	}
	return cid.NewCidV1(cid.Raw, mh), nil
}
