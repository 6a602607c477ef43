// Package index 提供服務根路徑的最小回應：服務名稱與 v1 endpoints 一覽。
package index

import (
	"encoding/json"
	"net/http"
)

func IndexHandlerFn(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"service": "matchlab",
		"v1": []string{
			"/v1/catalog",
			"/v1/session",
			"/v1/spin",
			"/v1/solve",
			"/v1/sim",
			"/v1/simbycfg",
			"/v1/stat",
		},
	})
}
