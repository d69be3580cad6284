package auth

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

type SimpleKeyProvider struct {
	keys map[string]string
}

func NewSimpleKeyProvider(keys map[string]string) *SimpleKeyProvider {
	return &SimpleKeyProvider{keys: keys}
}

func (p *SimpleKeyProvider) GetSecret(key string) string {
	return p.keys[key]
}

func (p *SimpleKeyProvider) NumKeys() int {
	return len(p.keys)
}

type FileBasedKeyProvider struct {
	keys map[string]string
}

func NewFileBasedKeyProvider(r io.Reader) (p *FileBasedKeyProvider, err error) {
	scanner := bufio.NewScanner(r)
	keys := make(map[string]string)
	for scanner.Scan() {
		line := scanner.Text()
		if len(strings.TrimSpace(line)) == 0 {
			continue
		}
		parts := strings.Split(line, ":")
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid api key/secret pair, must be api_key:secret: %v", line)
		}
		keys[strings.TrimSpace(parts[0])] = strings.TrimSpace(parts[1])
	}

	if err = scanner.Err(); err != nil {
		return
	}
	p = &FileBasedKeyProvider{
		keys: keys,
	}

	return
}

func (p *FileBasedKeyProvider) GetSecret(key string) string {
	return p.keys[key]
}

func (p *FileBasedKeyProvider) NumKeys() int {
	return len(p.keys)
}
