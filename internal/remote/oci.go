package remote

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/go-containerregistry/pkg/authn"
	"github.com/google/go-containerregistry/pkg/name"
	v1 "github.com/google/go-containerregistry/pkg/v1"
	"github.com/google/go-containerregistry/pkg/v1/empty"
	"github.com/google/go-containerregistry/pkg/v1/mutate"
	"github.com/google/go-containerregistry/pkg/v1/remote"
	"github.com/google/go-containerregistry/pkg/v1/types"
	"github.com/klauspost/compress/zstd"
)

// RootLabel is the image config label carrying the tree's root digest.
const RootLabel = "dev.treesum.root"

const maxAttempts = 3

// Client pushes and pulls manifest images for one registry reference.
type Client struct {
	ref  name.Reference
	auth Authenticator
}

// New creates a client from a standard image ref (e.g.,
// "ghcr.io/org/fingerprints:main").
func New(imageRef string, auth Authenticator) (*Client, error) {
	ref, err := name.ParseReference(imageRef, name.WithDefaultTag("latest"))
	if err != nil {
		return nil, fmt.Errorf("invalid image ref %q: %w", imageRef, err)
	}
	return &Client{ref: ref, auth: auth}, nil
}

func (c *Client) String() string   { return c.ref.String() }
func (c *Client) Registry() string { return c.ref.Context().RegistryStr() }

// manifestLayer implements v1.Layer with zstd compression for transfer.
type manifestLayer struct {
	compressed   []byte
	uncompressed []byte
}

var zstdEncoder, _ = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))

func newManifestLayer(data []byte) *manifestLayer {
	return &manifestLayer{
		compressed:   zstdEncoder.EncodeAll(data, nil),
		uncompressed: data,
	}
}

func (l *manifestLayer) Digest() (v1.Hash, error) {
	h, _, err := v1.SHA256(bytes.NewReader(l.compressed))
	return h, err
}

func (l *manifestLayer) DiffID() (v1.Hash, error) {
	h, _, err := v1.SHA256(bytes.NewReader(l.uncompressed))
	return h, err
}

func (l *manifestLayer) Compressed() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(l.compressed)), nil
}

func (l *manifestLayer) Uncompressed() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(l.uncompressed)), nil
}

func (l *manifestLayer) Size() (int64, error)                { return int64(len(l.compressed)), nil }
func (l *manifestLayer) MediaType() (types.MediaType, error) { return types.OCILayerZStd, nil }

// Publish uploads manifest data as a single-layer image labeled with
// the tree's root digest.
func (c *Client) Publish(ctx context.Context, rootDigest string, manifest []byte) error {
	img, err := mutate.AppendLayers(empty.Image, newManifestLayer(manifest))
	if err != nil {
		return fmt.Errorf("build image: %w", err)
	}

	cfg, err := img.ConfigFile()
	if err != nil {
		return fmt.Errorf("get config: %w", err)
	}
	cfg.Config.Labels = map[string]string{RootLabel: rootDigest}

	img, err = mutate.ConfigFile(img, cfg)
	if err != nil {
		return fmt.Errorf("set config: %w", err)
	}

	_, err = retry(ctx, maxAttempts, func() (struct{}, error) {
		return struct{}{}, remote.Write(c.ref, img, c.remoteOptions()...)
	})
	if err != nil {
		return fmt.Errorf("push %s: %w", c.ref, err)
	}
	return nil
}

// Fetch downloads the manifest and its root digest label.
func (c *Client) Fetch(ctx context.Context) (rootDigest string, manifest []byte, err error) {
	img, err := retry(ctx, maxAttempts, func() (v1.Image, error) {
		return remote.Image(c.ref, c.remoteOptions()...)
	})
	if err != nil {
		return "", nil, fmt.Errorf("fetch image: %w", err)
	}

	cfg, err := img.ConfigFile()
	if err != nil {
		return "", nil, fmt.Errorf("get config: %w", err)
	}

	rootDigest = cfg.Config.Labels[RootLabel]
	if rootDigest == "" {
		return "", nil, fmt.Errorf("missing %s label", RootLabel)
	}

	layers, err := img.Layers()
	if err != nil {
		return "", nil, fmt.Errorf("get layers: %w", err)
	}
	if len(layers) != 1 {
		return "", nil, fmt.Errorf("expected 1 layer, got %d", len(layers))
	}

	rc, err := layers[0].Uncompressed()
	if err != nil {
		return "", nil, fmt.Errorf("read layer: %w", err)
	}
	manifest, err = io.ReadAll(rc)
	if cerr := rc.Close(); cerr != nil && err == nil {
		err = cerr
	}
	if err != nil {
		return "", nil, fmt.Errorf("read layer: %w", err)
	}

	return rootDigest, manifest, nil
}

func (c *Client) remoteOptions() []remote.Option {
	if c.auth != nil {
		username, password, err := c.auth.Authenticate(c.Registry())
		if err == nil && username != "" {
			return []remote.Option{remote.WithAuth(&authn.Basic{
				Username: username,
				Password: password,
			})}
		}
	}
	return []remote.Option{remote.WithAuthFromKeychain(authn.DefaultKeychain)}
}

func retry[T any](ctx context.Context, attempts int, fn func() (T, error)) (T, error) {
	var zero T
	var lastErr error
	for i := 0; i < attempts; i++ {
		result, err := fn()
		if err == nil {
			return result, nil
		}
		lastErr = err
		if i < attempts-1 {
			delay := time.Duration(1<<i) * 500 * time.Millisecond
			select {
			case <-ctx.Done():
				return zero, ctx.Err()
			case <-time.After(delay):
			}
		}
	}
	return zero, lastErr
}
