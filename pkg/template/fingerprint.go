package template

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// fingerprintNode mirrors a template for canonical encoding. Struct
// field order fixes the encoding of everything except the config map,
// which the encoder sorts by key.
type fingerprintNode struct {
	Name   string
	Type   string
	Config map[string]any
	Subs   []fingerprintNode
}

func toFingerprintNode(t *Template) fingerprintNode {
	n := fingerprintNode{
		Name:   t.name,
		Type:   t.typ,
		Config: t.config,
	}
	if len(t.subs) > 0 {
		n.Subs = make([]fingerprintNode, len(t.subs))
		for i, sub := range t.subs {
			n.Subs[i] = toFingerprintNode(sub)
		}
	}
	return n
}

// Fingerprint returns a hex-encoded SHA-256 digest over a canonical
// msgpack encoding of the template tree. Structurally equal templates
// produce the same fingerprint regardless of config map iteration
// order, so fingerprints serve as stable cache and interning keys.
func (t *Template) Fingerprint() (string, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetSortMapKeys(true)
	if err := enc.Encode(toFingerprintNode(t)); err != nil {
		return "", fmt.Errorf("template: fingerprint %q: %w", t.name, err)
	}
	sum := sha256.Sum256(buf.Bytes())
	return hex.EncodeToString(sum[:]), nil
}
