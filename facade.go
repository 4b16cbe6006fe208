package ini

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
)

// Options configures a Document. Zero-value fields are filled with
// sensible defaults by New, the way go-slim-ini's Options/New pair works.
type Options struct {
	// Flavour governs tokenization and rendering. The zero value is
	// replaced with DefaultFlavour().
	Flavour Flavour
	// Policy governs value presentation on Save. The zero value is
	// AlwaysQuoted.
	Policy RenderPolicy
	// Encoding names an IANA character encoding (e.g. "windows-1252")
	// applied when reading and writing files. Empty means UTF-8, applied
	// with no transformation.
	Encoding string
	// Logger receives debug-level messages about file I/O. A nil Logger
	// is replaced with slog.Default().
	Logger *slog.Logger
}

func (o Options) withDefaults() Options {
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	if o.Flavour.QuoteCharacter == 0 {
		o.Flavour = DefaultFlavour()
	}
	return o
}

// Document is the façade over Parser and Renderer used by callers that
// only need to load, mutate, and save a file: it owns the I/O and
// encoding concerns so the model and component types stay transport
// agnostic.
type Document struct {
	opts Options
	cfg  *Configuration
}

// New returns an empty Document under opts.
func New(opts Options) *Document {
	opts = opts.withDefaults()
	return &Document{opts: opts, cfg: NewConfiguration()}
}

// Configuration returns the Document's in-memory tree for direct
// inspection or mutation.
func (d *Document) Configuration() *Configuration {
	return d.cfg
}

// Load parses data (already decoded to UTF-8 by the caller) into the
// Document, replacing any prior content.
func (d *Document) Load(data []byte) error {
	cfg, err := NewParser(d.opts.Flavour).Parse(data)
	if err != nil {
		return err
	}
	d.cfg = cfg
	return nil
}

// Render serializes the Document's Configuration under its Flavour and
// Policy and returns the UTF-8 encoded result.
func (d *Document) Render() (string, error) {
	r := &Renderer{Flavour: d.opts.Flavour, Policy: d.opts.Policy}
	var b strings.Builder
	if err := r.Render(d.cfg, &b); err != nil {
		return "", err
	}
	return b.String(), nil
}

// LoadFile reads path, transcodes it from opts.Encoding to UTF-8 when
// set, and parses it into a new Document.
func LoadFile(ctx context.Context, path string, opts Options) (*Document, error) {
	opts = opts.withDefaults()
	opts.Logger.DebugContext(ctx, "loading ini file", "path", path, "encoding", opts.Encoding)

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	decoded, err := decode(raw, opts.Encoding)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}

	doc := New(opts)
	if err := doc.Load(decoded); err != nil {
		opts.Logger.WarnContext(ctx, "failed to parse ini file", "path", path, "error", err)
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return doc, nil
}

// Save renders the Document and writes it to path, transcoding to
// opts.Encoding first when set, creating the file with mode perm if it
// does not already exist.
func (d *Document) Save(ctx context.Context, path string, perm os.FileMode) error {
	d.opts.Logger.DebugContext(ctx, "saving ini file", "path", path, "encoding", d.opts.Encoding)

	rendered, err := d.Render()
	if err != nil {
		return fmt.Errorf("rendering %s: %w", path, err)
	}

	encoded, err := encodeOut([]byte(rendered), d.opts.Encoding)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}

	if err := os.WriteFile(path, encoded, perm); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func resolveEncoding(name string) (encoding.Encoding, error) {
	if name == "" {
		return nil, nil
	}
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil {
		return nil, fmt.Errorf("unknown encoding %q: %w", name, err)
	}
	return enc, nil
}

func decode(raw []byte, name string) ([]byte, error) {
	enc, err := resolveEncoding(name)
	if err != nil {
		return nil, err
	}
	if enc == nil {
		return raw, nil
	}
	return enc.NewDecoder().Bytes(raw)
}

func encodeOut(raw []byte, name string) ([]byte, error) {
	enc, err := resolveEncoding(name)
	if err != nil {
		return nil, err
	}
	if enc == nil {
		return raw, nil
	}
	return enc.NewEncoder().Bytes(raw)
}
