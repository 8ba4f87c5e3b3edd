package testutil

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTestDBSharesOneDatabaseAcrossGoroutines(t *testing.T) {
	db := MustOpenTestDB(t)

	require.NoError(t, db.Exec("CREATE TABLE kv (k TEXT PRIMARY KEY, v TEXT)").Error)
	require.NoError(t, db.Exec("INSERT INTO kv (k, v) VALUES ('a', '1')").Error)

	// Parallel queries force the pool to hand out connections; every one
	// must still see the schema created above.
	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			var n int64
			if err := db.Raw("SELECT COUNT(*) FROM kv").Scan(&n).Error; err != nil {
				errs <- err
				return
			}
			if n != 1 {
				errs <- fmt.Errorf("expected 1 row, saw %d", n)
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}
}
