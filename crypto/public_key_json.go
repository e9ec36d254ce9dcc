package crypto

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// publicKeyJSON is the wire form of a PublicKey, as the chain's gateway accepts it.
type publicKeyJSON struct {
	Type string `json:"@type"`
	Key  []byte `json:"key"`
}

// MarshalJSON encodes the key as `{"@type": <type url>, "key": <base64 SEC1 compressed>}`.
func (k PublicKey) MarshalJSON() ([]byte, error) {
	if k.key == nil {
		return []byte("null"), nil
	}
	return json.Marshal(publicKeyJSON{Type: k.algo.TypeURL(), Key: k.Bytes()})
}

// UnmarshalJSON decodes the form written by MarshalJSON.
func (k *PublicKey) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*k = PublicKey{}
		return nil
	}
	var raw publicKeyJSON
	err := json.Unmarshal(data, &raw)
	if err != nil {
		return fmt.Errorf("could not decode public key: %w", err)
	}
	algo, err := publicKeyAlgoFromTypeURL(raw.Type)
	if err != nil {
		return err
	}
	parsed, err := ParsePublicKey(algo, raw.Key)
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

func publicKeyAlgoFromTypeURL(typeURL string) (PublicKeyAlgo, error) {
	for _, algo := range []PublicKeyAlgo{Secp256k1, EthSecp256k1} {
		if algo.TypeURL() == typeURL {
			return algo, nil
		}
	}
	return UnknownPublicKeyAlgo, fmt.Errorf("%w: type url %q", ErrUnsupportedAlgo, typeURL)
}
