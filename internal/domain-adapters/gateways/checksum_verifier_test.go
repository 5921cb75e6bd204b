package gateways

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChecksumVerifier(t *testing.T) {
	v := NewChecksumVerifier()
	data := []byte("hello")
	const sum = "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824"

	assert.Equal(t, sum, v.Digest(data))
	assert.NoError(t, v.VerifyDigest(data, sum))
	assert.NoError(t, v.VerifyDigest(data, "sha256:"+sum))
	assert.NoError(t, v.VerifyDigest(data, " SHA256:2CF24DBA5FB0A30E26E83B2AC5B9E29E1B161E5C1FA7425E73043362938B9824 "))

	err := v.VerifyDigest([]byte("hello!"), sum)
	assert.ErrorContains(t, err, "checksum mismatch")
}
