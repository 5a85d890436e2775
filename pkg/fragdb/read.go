// Reading the database file. Plain files are mapped into memory and
// decoded in place, which matters once databases reach a few hundred
// megabytes. Gzipped files go through the decompressing wrapper
// instead, since there is nothing to be gained mapping compressed
// bytes.

package fragdb

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/edsrzf/mmap-go"

	"confgen/pkg/zwrap"
)

// gzip magic bytes
var gzMagic = [2]byte{0x1f, 0x8b}

// ReadDB decodes a database file, gzipped or not.
func ReadDB(fname string) (RawDB, error) {
	fp, err := os.Open(fname)
	if err != nil {
		return nil, err
	}

	var head [2]byte
	if _, err := io.ReadFull(fp, head[:]); err != nil {
		fp.Close()
		return nil, fmt.Errorf("reading %s: %w", fname, err)
	}
	if _, err := fp.Seek(0, io.SeekStart); err != nil {
		fp.Close()
		return nil, err
	}

	if head == gzMagic {
		return readCompressed(fp, fname)
	}
	return readMapped(fp, fname)
}

func readCompressed(fp *os.File, fname string) (RawDB, error) {
	rdr, err := zwrap.WrapMaybe(fp)
	if err != nil {
		fp.Close()
		return nil, fmt.Errorf("reading %s: %w", fname, err)
	}
	defer rdr.Close()
	buf, err := io.ReadAll(rdr)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", fname, err)
	}
	return decode(buf, fname)
}

func readMapped(fp *os.File, fname string) (RawDB, error) {
	defer fp.Close()
	mm, err := mmap.Map(fp, mmap.RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("mapping %s: %w", fname, err)
	}
	defer mm.Unmap()
	return decode(mm, fname)
}

// decode unmarshals the raw database. The decoder copies everything it
// keeps, so the backing bytes may be unmapped afterwards.
func decode(buf []byte, fname string) (RawDB, error) {
	var db RawDB
	if err := json.Unmarshal(buf, &db); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", fname, err)
	}
	return db, nil
}
