package auth

import (
	"github.com/AzureAD/microsoft-authentication-library-for-go/apps/cache"
)

type fakeMarshaler string

func (f fakeMarshaler) Marshal() ([]byte, error) {
	return []byte(f), nil
}

type fakeUnmarshaler struct {
	data   []byte
	called bool
}

func (f *fakeUnmarshaler) Unmarshal(b []byte) error {
	f.called = true
	f.data = b
	return nil
}

func cacheExportHints() cache.ExportHints {
	return cache.ExportHints{PartitionKey: ""}
}

func cacheReplaceHints() cache.ReplaceHints {
	return cache.ReplaceHints{PartitionKey: ""}
}
