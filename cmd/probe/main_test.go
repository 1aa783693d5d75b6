package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePage = `<table>
<tr><th>สถานี</th><th>ที่ตั้ง</th><th>ระดับน้ำ</th></tr>
<tr><th>สิงห์บุรี</th><td>ต.บางมัญ</td><td>5.12</td></tr>
<tr><th>อินทร์บุรี</th><td>ต.อินทร์บุรี</td><td>9.03</td></tr>
</table>`

func TestRun_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wl.html")
	require.NoError(t, os.WriteFile(path, []byte(samplePage), 0o600))

	var out bytes.Buffer
	code := run(&out, "", path, "อินทร์บุรี", time.Second)

	assert.Equal(t, 0, code)
	assert.Contains(t, out.String(), "[9.03]")
	assert.Contains(t, out.String(), "* row")
	assert.Contains(t, out.String(), "PASS อินทร์บุรี level=9.03 (column 1)")
}

func TestRun_URL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(samplePage))
	}))
	defer srv.Close()

	var out bytes.Buffer
	assert.Equal(t, 0, run(&out, srv.URL, "", "อินทร์บุรี", time.Second))
}

func TestRun_MarksRowReadByRun(t *testing.T) {
	page := `<table>
<tr><th>ท่างาม</th><td>ต.ท่างาม อ.อินทร์บุรี</td><td>7.10</td></tr>
<tr><th>
  อินทร์บุรี
</th><td>ต.อินทร์บุรี</td><td>9.03</td></tr>
</table>`
	path := filepath.Join(t.TempDir(), "wl.html")
	require.NoError(t, os.WriteFile(path, []byte(page), 0o600))

	var out bytes.Buffer
	code := run(&out, "", path, "อินทร์บุรี", time.Second)

	assert.Equal(t, 0, code)
	assert.Contains(t, out.String(), `~ row   0  th="ท่างาม"`)
	assert.Contains(t, out.String(), `* row   1  th="อินทร์บุรี"`)
	assert.Contains(t, out.String(), "PASS อินทร์บุรี level=9.03")
}

func TestRun_StationMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wl.html")
	require.NoError(t, os.WriteFile(path, []byte(samplePage), 0o600))

	var out bytes.Buffer
	code := run(&out, "", path, "พรหมบุรี", time.Second)

	assert.Equal(t, 1, code)
	assert.Contains(t, out.String(), "FAIL extract")
	assert.Contains(t, out.String(), "station not found")
}

func TestRun_LoadFailure(t *testing.T) {
	var out bytes.Buffer
	code := run(&out, "", filepath.Join(t.TempDir(), "absent.html"), "อินทร์บุรี", time.Second)

	assert.Equal(t, 1, code)
	assert.Contains(t, out.String(), "FAIL load")
}
