package cache

import (
	"crypto/sha256"
	"fmt"
	"net/url"
	"sort"
	"strings"
)

// BuildKey returns a deterministic namespaced key for a parameter set.
// Parameter maps that are equal as unordered key/value pairs produce the
// same key: keys are sorted before encoding, then hashed to a short digest.
func BuildKey(namespace string, params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(k))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(params[k]))
	}

	sum := sha256.Sum256([]byte(b.String()))
	return fmt.Sprintf("%s_%x", namespace, sum[:8])
}

// SlugKey namespaces a key by a plain slug, for values keyed one-to-one
// by collective.
func SlugKey(namespace, slug string) string {
	return namespace + "_" + slug
}
