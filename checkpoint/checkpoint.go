// checkpoint provides persistent SCF restart data in a bolt database.
package checkpoint

import (
	"bytes"
	"encoding/json"
	"io"
	"time"

	"github.com/klauspost/compress/gzip"
	"github.com/op/go-logging"

	bolt "go.etcd.io/bbolt"
)

// log is the global logging variable.
var log = logging.MustGetLogger("checkpoint")

// MAIN is key name for all snapshots
var MAIN = []byte("main")

// Data stores one SCF snapshot: the last energy and the density
// matrix in row-major order, enough to warm-restart a solve.
type Data struct {
	Energy    float64
	Density   []float64
	N         int
	Iteration int
	Converged bool
	Final     bool
}

// IO provides throttled load and save of SCF snapshots.
type IO struct {
	db      *bolt.DB
	key     []byte
	last    time.Time
	seconds float64
}

// NewIO creates a new IO. seconds is the minimal delay between saves
// as reported by Old.
func NewIO(db *bolt.DB, key []byte, seconds float64) (s *IO) {
	s = &IO{
		db:      db,
		key:     key,
		seconds: seconds,
	}
	return
}

// Save saves a snapshot to the database.
func (s *IO) Save(data *Data) error {
	// Even if saving fails, we do not want to run this code too often.
	s.SetNow()
	dataB, err := encode(data)
	if err != nil {
		log.Error("Error serializing checkpoint", err)
		return err
	}
	err = SaveData(s.db, s.key, dataB)
	if err != nil {
		log.Error("Error saving checkpoint", err)
	}
	return err
}

// GetData returns the stored snapshot, nil when none is present.
func (s *IO) GetData() (*Data, error) {
	b, err := LoadData(s.db, s.key)

	if err != nil || b == nil {
		return nil, err
	}

	data, err := decode(b)
	if err != nil {
		return nil, err
	}

	if data == nil || len(data.Density) == 0 {
		return nil, nil
	}

	if data.Final {
		log.Noticef("Found converged SCF checkpoint (iteration=%v, E=%v)", data.Iteration, data.Energy)
	} else {
		log.Noticef("Found unfinished SCF checkpoint (iteration=%v, E=%v)", data.Iteration, data.Energy)
	}

	return data, nil
}

// Old returns true if last checkpoint save time too long ago.
func (s *IO) Old() bool {
	if time.Since(s.last).Seconds() > s.seconds {
		return true
	}
	return false
}

// SetNow sets last checkpoint time to now.
func (s *IO) SetNow() {
	s.last = time.Now()
}

// encode serializes a snapshot as gzipped JSON. Density matrices
// carry long runs of near-identical digits, so compression keeps the
// database small for large basis sets.
func encode(data *Data) ([]byte, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(raw); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decode(b []byte) (*Data, error) {
	zr, err := gzip.NewReader(bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	defer zr.Close()
	raw, err := io.ReadAll(zr)
	if err != nil {
		return nil, err
	}
	var data *Data
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, err
	}
	return data, nil
}

// SaveData saves values in bolt database.
func SaveData(db *bolt.DB, key []byte, data []byte) error {
	if db == nil {
		return nil
	}
	err := db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(MAIN)
		if err != nil {
			return err
		}

		err = b.Put(key, data)
		return err
	})
	return err
}

// LoadData loads data from bolt database.
func LoadData(db *bolt.DB, key []byte) ([]byte, error) {
	var data []byte
	if db == nil {
		return nil, nil
	}
	err := db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(MAIN)
		if b == nil {
			return nil
		}

		v := b.Get(key)
		if v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return data, nil
}
