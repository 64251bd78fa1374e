package tools

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"path"
	"strings"

	"github.com/SevereCloud/vksdk/v2/api"
	"github.com/golang/glog"
)

const (
	DefaultVKBaseURL = "https://api.vk.com/method"
	VKAPIVersion     = "5.199"
)

// UploadedPhoto is the upload server's answer, to be passed on to
// photos.saveMessagesPhoto.
type UploadedPhoto struct {
	Server int64
	Photo  string
	Hash   string
}

// SavedPhoto identifies a photo stored on VK.
type SavedPhoto struct {
	ID      int64
	OwnerID int64
}

// Attachment returns the reference used by messages.send.
func (p SavedPhoto) Attachment() string {
	return fmt.Sprintf("photo%d_%d", p.OwnerID, p.ID)
}

// bearerTransport adds the access token as an Authorization header to VK
// method calls. Upload servers and image hosts get the request untouched.
type bearerTransport struct {
	vk    *api.VK
	token string
	base  http.RoundTripper
}

func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if strings.HasPrefix(req.URL.String(), t.vk.MethodURL) {
		req = req.Clone(req.Context())
		req.Header.Set("Authorization", "Bearer "+t.token)
	}
	return t.base.RoundTrip(req)
}

// VKClient talks to the VK API methods the reminder needs.
type VKClient struct {
	api      *api.VK
	client   *http.Client
	randomID func() int32
}

func NewVKClient(token string, client *http.Client) *VKClient {
	vk := api.NewVK(token)
	vk.Version = VKAPIVersion
	vk.MethodURL = DefaultVKBaseURL + "/"

	base := client.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	vk.Client = &http.Client{
		Timeout:   client.Timeout,
		Transport: &bearerTransport{vk: vk, token: token, base: base},
	}

	return &VKClient{
		api:      vk,
		client:   client,
		randomID: rand.Int31,
	}
}

// WithBaseURL points the client at a different API root.
func (v *VKClient) WithBaseURL(baseURL string) *VKClient {
	v.api.MethodURL = strings.TrimRight(baseURL, "/") + "/"
	return v
}

// UploadServer asks for a one-off upload URL for message photos.
func (v *VKClient) UploadServer(ctx context.Context) (string, error) {
	server, err := v.api.PhotosGetMessagesUploadServer(api.Params{}.WithContext(ctx))
	if err != nil {
		return "", fmt.Errorf("%w: photos.getMessagesUploadServer: %w", ErrUploadFailure, err)
	}
	if server.UploadURL == "" {
		return "", fmt.Errorf("%w: no upload_url in response", ErrUploadFailure)
	}
	return server.UploadURL, nil
}

// UploadPhoto downloads the image at imageURL and posts it to uploadURL.
func (v *VKClient) UploadPhoto(ctx context.Context, uploadURL, imageURL string) (UploadedPhoto, error) {
	image, err := v.download(ctx, imageURL)
	if err != nil {
		return UploadedPhoto{}, fmt.Errorf("%w: failed to download image: %v", ErrUploadFailure, err)
	}

	raw, err := v.api.UploadFile(uploadURL, bytes.NewReader(image), "photo", imageName(imageURL))
	if err != nil {
		return UploadedPhoto{}, fmt.Errorf("%w: upload: %v", ErrUploadFailure, err)
	}
	glog.V(2).Infof("VK upload response: %s", raw)

	var uploaded struct {
		Server json.Number `json:"server"`
		Photo  string      `json:"photo"`
		Hash   string      `json:"hash"`
	}
	if err := json.Unmarshal(raw, &uploaded); err != nil {
		return UploadedPhoto{}, fmt.Errorf("%w: failed to decode upload response: %v", ErrUploadFailure, err)
	}
	if uploaded.Photo == "" || uploaded.Photo == "[]" || uploaded.Hash == "" || uploaded.Server == "" {
		return UploadedPhoto{}, fmt.Errorf("%w: upload response is missing photo, server or hash", ErrUploadFailure)
	}

	server, err := parseServer(uploaded.Server)
	if err != nil {
		return UploadedPhoto{}, fmt.Errorf("%w: bad server %q: %v", ErrUploadFailure, uploaded.Server, err)
	}
	return UploadedPhoto{Server: server, Photo: uploaded.Photo, Hash: uploaded.Hash}, nil
}

// SavePhoto stores an uploaded photo so it can be attached to messages.
func (v *VKClient) SavePhoto(ctx context.Context, p UploadedPhoto) (SavedPhoto, error) {
	saved, err := v.api.PhotosSaveMessagesPhoto(api.Params{
		"photo":  p.Photo,
		"server": int(p.Server),
		"hash":   p.Hash,
	}.WithContext(ctx))
	if err != nil {
		return SavedPhoto{}, fmt.Errorf("%w: photos.saveMessagesPhoto: %w", ErrUploadFailure, err)
	}
	if len(saved) == 0 {
		return SavedPhoto{}, fmt.Errorf("%w: photos.saveMessagesPhoto returned no photos", ErrUploadFailure)
	}
	return SavedPhoto{ID: int64(saved[0].ID), OwnerID: int64(saved[0].OwnerID)}, nil
}

// Send posts text to peerID. The attachment is omitted when empty.
func (v *VKClient) Send(ctx context.Context, peerID int64, text, attachment string) error {
	params := api.Params{
		"peer_id":   int(peerID),
		"random_id": int(v.randomID()),
		"message":   text,
	}
	if attachment != "" {
		params["attachment"] = attachment
	}

	messageID, err := v.api.MessagesSend(params.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("%w: messages.send: %w", ErrSendFailure, err)
	}
	glog.V(1).Infof("VK message %d sent to %d", messageID, peerID)
	return nil
}

func (v *VKClient) download(ctx context.Context, imageURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := v.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	return io.ReadAll(resp.Body)
}

// parseServer accepts the server ID as an integer or as a float.
func parseServer(n json.Number) (int64, error) {
	if i, err := n.Int64(); err == nil {
		return i, nil
	}
	f, err := n.Float64()
	if err != nil {
		return 0, err
	}
	return int64(f), nil
}

func imageName(imageURL string) string {
	u, err := url.Parse(imageURL)
	if err != nil {
		return "image.jpg"
	}
	name := path.Base(u.Path)
	if name == "." || name == "/" || path.Ext(name) == "" {
		return "image.jpg"
	}
	return name
}
