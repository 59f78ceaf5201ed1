package server

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/GastonArthur/Catalogo-Mayorista/pkg/messaging"
	"github.com/GastonArthur/Catalogo-Mayorista/pkg/refresh"
)

// TriggerRefresh runs one fetch cycle right away instead of waiting for
// the schedule. Listener nodes have no refresher and answer 503.
func (ws *WebServer) TriggerRefresh(w http.ResponseWriter, r *http.Request) {
	if ws.Refresher == nil {
		http.Error(w, "refresh not available on this node", http.StatusServiceUnavailable)
		return
	}
	if err := ws.Refresher.Refresh(r.Context()); err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}
	defaultHeaders(w, r, true, "0")
	w.WriteHeader(http.StatusOK)
	err := json.NewEncoder(w).Encode(ws.Refresher.Status())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (ws *WebServer) GetStatus(w http.ResponseWriter, r *http.Request) {
	defaultHeaders(w, r, true, "0")
	w.WriteHeader(http.StatusOK)
	var status refresh.Status
	if ws.Refresher != nil {
		status = ws.Refresher.Status()
	} else {
		status = refresh.Status{
			Loaded:    ws.Index.Loaded(),
			Seq:       ws.Index.Sequence(),
			Products:  ws.Index.Len(),
			UpdatedAt: ws.Index.UpdatedAt(),
		}
	}
	err := json.NewEncoder(w).Encode(status)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// HandleSettings reads or updates the owner settings. An update is
// persisted and broadcast so listener nodes pick it up.
func (ws *WebServer) HandleSettings(w http.ResponseWriter, r *http.Request) {
	if r.Method == "POST" {
		message := messaging.SettingsMessage{}
		err := json.NewDecoder(r.Body).Decode(&message)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		message.Apply()
		if ws.Storage != nil {
			if err := ws.Storage.SaveSettings(); err != nil {
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}
		}
		if ws.Transport != nil {
			if err := ws.Transport.PublishSettings(); err != nil {
				log.Printf("Could not publish settings change: %v", err)
			}
		}
	}
	defaultHeaders(w, r, true, "0")
	w.WriteHeader(http.StatusOK)
	err := json.NewEncoder(w).Encode(messaging.CurrentSettingsMessage())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (ws *WebServer) AdminHandler() *http.ServeMux {
	srv := http.NewServeMux()

	srv.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		defaultHeaders(w, r, false, "0")
		w.WriteHeader(http.StatusOK)
		_, err := w.Write([]byte("ok"))
		if err != nil {
			log.Println("Error writing health check response")
		}
	})

	srv.HandleFunc("/login", ws.Auth.Login)
	srv.HandleFunc("/logout", ws.Auth.Logout)
	srv.HandleFunc("/user", ws.Auth.User)
	srv.HandleFunc("/auth_callback", ws.Auth.AuthCallback)

	srv.HandleFunc("POST /refresh", ws.Auth.Middleware(ws.TriggerRefresh))
	srv.HandleFunc("GET /status", ws.Auth.Middleware(ws.GetStatus))
	srv.HandleFunc("/settings", ws.Auth.Middleware(ws.HandleSettings))

	return srv
}
