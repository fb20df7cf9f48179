package sizecache

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/lss-dev/lss/internal/ioutil"
	"github.com/lss-dev/lss/internal/logging"
)

// One cache record, fields back-to-back with no outer framing:
//
//	key length  2 bytes LE  (valid range 1..maxKeyLen)
//	key bytes   key-length bytes, UTF-8
//	node-id     8 bytes LE, followed by 2 reserved padding bytes
//	magnitude   8 bytes LE
//	unit tag    2 bytes LE
//	volume-id   8 bytes LE
//
// Records repeat until EOF; there is no terminator.
const (
	// maxKeyLen bounds the key-length field. Anything outside 1..maxKeyLen
	// cannot have been written by this codec and marks the stream corrupt.
	maxKeyLen = 4096

	// fixedTail is the byte count of the fields following the key.
	fixedTail = 8 + 2 + 8 + 2 + 8

	// maxCacheFileSize is the ceiling above which a cache file is ignored
	// outright instead of parsed.
	maxCacheFileSize = 100 * 1024 * 1024
)

var (
	// ErrKeyTooLarge is returned by Encode for keys whose byte length does
	// not fit the 16-bit length field.
	ErrKeyTooLarge = errors.New("cache key > 65535 bytes")

	// ErrCorrupt is returned by Next once the stream is deemed corrupt.
	// No resynchronization is attempted: once a record is suspect, every
	// later byte offset is too.
	ErrCorrupt = errors.New("corrupt cache record")
)

// Encoder writes records to a stream.
type Encoder struct {
	w   io.Writer
	buf []byte
}

func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: w, buf: make([]byte, 0, 256)}
}

// Encode appends one record to the stream.
func (enc *Encoder) Encode(e Entry) error {
	if len(e.Key) > math.MaxUint16 {
		return ErrKeyTooLarge
	}
	b := enc.buf[:0]
	b = binary.LittleEndian.AppendUint16(b, uint16(len(e.Key)))
	b = append(b, e.Key...)
	b = binary.LittleEndian.AppendUint64(b, e.NodeID)
	b = append(b, 0, 0) // reserved padding
	b = binary.LittleEndian.AppendUint64(b, e.Magnitude)
	b = binary.LittleEndian.AppendUint16(b, uint16(e.Unit))
	b = binary.LittleEndian.AppendUint64(b, e.VolumeID)
	enc.buf = b
	_, err := enc.w.Write(b)
	return err
}

// Decoder reads records from a stream.
type Decoder struct {
	r         io.Reader
	buf       []byte
	corrupted int
}

func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: r, buf: make([]byte, 1024)}
}

// Next reads one record. It returns io.EOF at a clean record boundary. A
// torn read mid-record, an out-of-range key length, or a non-UTF-8 key is
// a corruption event: the counter is incremented and Next returns
// ErrCorrupt for this and every later call.
func (d *Decoder) Next() (Entry, error) {
	if d.corrupted > 0 {
		return Entry{}, ErrCorrupt
	}
	var lenBuf [2]byte
	if _, err := io.ReadFull(d.r, lenBuf[:]); err != nil {
		if err == io.EOF {
			return Entry{}, io.EOF
		}
		d.corrupted++
		return Entry{}, ErrCorrupt
	}
	keyLen := int(binary.LittleEndian.Uint16(lenBuf[:]))
	if keyLen == 0 || keyLen > maxKeyLen {
		d.corrupted++
		return Entry{}, ErrCorrupt
	}

	// The key and the fixed fields are read together so that a bad key
	// never leaves the trailing fields unconsumed and the offsets skewed.
	need := keyLen + fixedTail
	if cap(d.buf) < need {
		d.buf = make([]byte, max(need, cap(d.buf)*2))
	}
	buf := d.buf[:need]
	if _, err := io.ReadFull(d.r, buf); err != nil {
		d.corrupted++
		return Entry{}, ErrCorrupt
	}

	key := buf[:keyLen]
	if !utf8.Valid(key) {
		d.corrupted++
		return Entry{}, ErrCorrupt
	}

	rest := buf[keyLen:]
	e := Entry{
		Key:       Key(key),
		NodeID:    binary.LittleEndian.Uint64(rest[0:8]),
		Magnitude: binary.LittleEndian.Uint64(rest[10:18]),
		Unit:      Unit(binary.LittleEndian.Uint16(rest[18:20])),
		VolumeID:  binary.LittleEndian.Uint64(rest[20:28]),
	}
	if !e.Unit.Valid() {
		e.Unit = UnitBytes
	}
	return e, nil
}

// Corrupted reports how many corruption events the decoder has seen.
func (d *Decoder) Corrupted() int {
	return d.corrupted
}

// Load reads the cache file at path into a Store and reports the number of
// corruption events. A missing or empty file is the documented no-cache-yet
// case: an empty store, zero corruption. A file above the size ceiling is
// ignored rather than parsed. Corruption aborts the parse and keeps the
// complete records that preceded it.
func Load(path string, log logging.Logger) (*Store, int, error) {
	store := NewStore()

	info, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		log.Info(fmt.Sprintf("no cache file found at %s", path))
		return store, 0, nil
	}
	if err != nil {
		return nil, 0, err
	}
	if info.Size() == 0 {
		log.Info("cache file is empty")
		return store, 0, nil
	}
	if info.Size() > maxCacheFileSize {
		log.Warning(fmt.Sprintf("cache file too large (%d bytes), using empty cache", info.Size()))
		return store, 0, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()

	dec := NewDecoder(ioutil.WithBufferedReads(f))
	for {
		e, err := dec.Next()
		if err != nil {
			break
		}
		store.put(e)
	}
	if n := dec.Corrupted(); n > 0 {
		log.Warning(fmt.Sprintf("%d corrupt cache records, keeping %d parsed entries", n, store.Len()))
	}
	log.Info(fmt.Sprintf("cache loaded: %d entries", store.Len()))
	return store, dec.Corrupted(), nil
}

// Save writes the whole store to path in ascending key order, creating the
// cache directory first. The write is a single batch flush; a crash midway
// leaves a truncated file that the next Load tolerates as corruption.
// Entries whose key exceeds the 16-bit length field are skipped with a
// warning rather than failing the save.
func Save(store *Store, path string, log logging.Logger) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	bw := ioutil.WithBufferedWrites(f)
	enc := NewEncoder(bw)
	var writeErr error
	store.Ascend(func(e Entry) bool {
		if err := enc.Encode(e); err != nil {
			if errors.Is(err, ErrKeyTooLarge) {
				log.Warning(fmt.Sprintf("cache key too long, skipping: %s", e.Key))
				return true
			}
			writeErr = err
			return false
		}
		return true
	})
	if err := bw.Close(); err != nil && writeErr == nil {
		writeErr = err
	}
	if err := f.Close(); err != nil && writeErr == nil {
		writeErr = err
	}
	if writeErr != nil {
		return writeErr
	}

	log.Info(fmt.Sprintf("cache saved to %s (%d entries)", path, store.Len()))
	return nil
}
