package ocr

import (
	"io"
	"net/http"
	"os"
	"path/filepath"

	hterrors "github.com/hypetrigger-go/hypetrigger/internal/errors"
)

// tessdataBaseURL is a var (not const) so tests can point it at a local
// httptest.Server via setTessdataBaseURL.
var tessdataBaseURL = "https://github.com/tesseract-ocr/tessdata/raw/4.00/"

func setTessdataBaseURL(url string) { tessdataBaseURL = url }

// ensureLanguageData fetches <datapath>/<lang>.traineddata from the upstream
// tessdata distribution if it is not already present, creating intermediate
// directories as needed. net/http's default client follows redirects.
func ensureLanguageData(datapath, lang string) error {
	path := filepath.Join(datapath, lang+".traineddata")
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	if err := os.MkdirAll(datapath, 0o755); err != nil {
		return hterrors.NewIOError("failed to create OCR datapath", err)
	}

	resp, err := http.Get(tessdataBaseURL + lang + ".traineddata")
	if err != nil {
		return hterrors.NewNetworkError("failed to fetch language data for "+lang, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return hterrors.NewNetworkError("language data fetch for "+lang+" returned non-200 status", nil)
	}

	out, err := os.Create(path)
	if err != nil {
		return hterrors.NewIOError("failed to create traineddata file", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, resp.Body); err != nil {
		return hterrors.NewNetworkError("failed to write language data for "+lang, err)
	}
	return nil
}
