package transport

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/ProgramComputer/EmbeddingBridge-sub001/internal/config"
	"github.com/ProgramComputer/EmbeddingBridge-sub001/internal/ebterr"
)

// httpTransport is a hand-rolled driver over the stdlib net/http client,
// speaking a simple REST-ish convention: PUT to upload a key, GET to
// download, GET ?list=<prefix> to list, DELETE to remove. Remotes
// implementing a different convention are out of scope for this core
// (see spec.md §1, "concrete transport drivers... beyond the abstract
// transport contract").
type httpTransport struct {
	baseURL string
	client  *http.Client
	token   string
	user    string
	pass    string
}

func newHTTPTransport(u *url.URL, settings *config.Settings) *httpTransport {
	t := &httpTransport{
		baseURL: strings.TrimSuffix(u.String(), "/"),
		client:  &http.Client{},
	}
	if settings != nil {
		t.token = settings.AuthToken
		t.user = settings.AuthUser
		t.pass = settings.AuthPassword
	}
	return t
}

func (t *httpTransport) Connect() error { return nil }

func (t *httpTransport) authenticate(req *http.Request) {
	if t.token != "" {
		req.Header.Set("Authorization", "Bearer "+t.token)
	} else if t.user != "" {
		req.SetBasicAuth(t.user, t.pass)
	}
}

func (t *httpTransport) SendData(remoteKey string, buf []byte) error {
	const op = "transport.http.SendData"
	req, err := http.NewRequest(http.MethodPut, t.baseURL+"/"+remoteKey, bytes.NewReader(buf))
	if err != nil {
		return ebterr.Wrap(op, ebterr.KindInvalidInput, err)
	}
	t.authenticate(req)

	resp, err := t.client.Do(req)
	if err != nil {
		return ebterr.Wrap(op, ebterr.KindFileIO, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		body, _ := io.ReadAll(resp.Body)
		return ebterr.New(op, ebterr.KindFileIO, fmt.Sprintf("remote returned status %d: %s", resp.StatusCode, body))
	}
	return nil
}

func (t *httpTransport) ReceiveData(remoteKey string) ([]byte, error) {
	const op = "transport.http.ReceiveData"
	req, err := http.NewRequest(http.MethodGet, t.baseURL+"/"+remoteKey, nil)
	if err != nil {
		return nil, ebterr.Wrap(op, ebterr.KindInvalidInput, err)
	}
	t.authenticate(req)

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, ebterr.Wrap(op, ebterr.KindFileIO, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return nil, ebterr.New(op, ebterr.KindNotFound, "remote key not found: "+remoteKey)
	}
	if resp.StatusCode/100 != 2 {
		body, _ := io.ReadAll(resp.Body)
		return nil, ebterr.New(op, ebterr.KindFileIO, fmt.Sprintf("remote returned status %d: %s", resp.StatusCode, body))
	}
	return io.ReadAll(resp.Body)
}

func (t *httpTransport) ListFiles(prefix string) ([]string, error) {
	const op = "transport.http.ListFiles"
	req, err := http.NewRequest(http.MethodGet, t.baseURL+"/?list="+url.QueryEscape(prefix), nil)
	if err != nil {
		return nil, ebterr.Wrap(op, ebterr.KindInvalidInput, err)
	}
	t.authenticate(req)

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, ebterr.Wrap(op, ebterr.KindFileIO, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return nil, ebterr.New(op, ebterr.KindFileIO, fmt.Sprintf("remote returned status %d", resp.StatusCode))
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, ebterr.Wrap(op, ebterr.KindFileIO, err)
	}
	lines := strings.Split(strings.TrimSpace(string(body)), "\n")
	var keys []string
	for _, l := range lines {
		if l != "" {
			keys = append(keys, l)
		}
	}
	return keys, nil
}

func (t *httpTransport) DeleteFiles(keys []string) error {
	const op = "transport.http.DeleteFiles"
	for _, key := range keys {
		req, err := http.NewRequest(http.MethodDelete, t.baseURL+"/"+key, nil)
		if err != nil {
			return ebterr.Wrap(op, ebterr.KindInvalidInput, err)
		}
		t.authenticate(req)

		resp, err := t.client.Do(req)
		if err != nil {
			return ebterr.Wrap(op, ebterr.KindFileIO, err)
		}
		resp.Body.Close()
		if resp.StatusCode/100 != 2 && resp.StatusCode != http.StatusNotFound {
			return ebterr.New(op, ebterr.KindFileIO, fmt.Sprintf("remote returned status %d deleting %s", resp.StatusCode, key))
		}
	}
	return nil
}

func (t *httpTransport) Close() error { return nil }
