package server

import (
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/robclancy/middleman/internal/builder"
	"github.com/robclancy/middleman/internal/resolver"
	"github.com/robclancy/middleman/internal/sitemap"
	"github.com/robclancy/middleman/internal/tlogger"
	"github.com/robclancy/middleman/internal/watcher"

	_ "embed"
)

//go:embed livereload.html
var liveReloadScript []byte

var upgrader = websocket.Upgrader{
	HandshakeTimeout: 10 * time.Second,
	Error: func(w http.ResponseWriter, r *http.Request, status int, reason error) {
		w.WriteHeader(500)
	},
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Server is the live dev server: it serves the built tree, mapping request
// paths through the sitemap's URL resolution, and rebuilds on filesystem
// changes reported through the store's change-notification rules.
type Server struct {
	sourceDir    string
	buildDir     string
	watchDirs    []string
	port         string
	override404  string
	store        *sitemap.Store
	urlresolver  *resolver.Resolver
	reloadBroker *Broker
	buildtool    *builder.Builder
}

func (s *Server) TriggerReload() {
	s.reloadBroker.Publish(struct{}{})
}

// NewServer wires a server around an already-configured store and resolver.
// watchDirs lists extra directories (locale data) fed into the change
// notifications besides the source tree.
func NewServer(sourceDir, buildDir, port, override404 string, store *sitemap.Store, rv *resolver.Resolver, buildtool *builder.Builder, watchDirs ...string) *Server {
	return &Server{
		sourceDir:    sourceDir,
		buildDir:     buildDir,
		watchDirs:    watchDirs,
		port:         port,
		override404:  override404,
		store:        store,
		urlresolver:  rv,
		reloadBroker: newBroker(),
		buildtool:    buildtool,
	}
}

func (s *Server) Start(withBuilder bool) error {
	go s.reloadBroker.Start()

	if withBuilder {
		err := s.buildtool.Build()
		if err != nil {
			os.Exit(1)
		}

		updates := make([]<-chan string, 0, len(s.watchDirs)+1)
		updates = append(updates, watcher.StartWatcher(s.sourceDir))
		for _, dir := range s.watchDirs {
			if _, err := os.Stat(dir); err == nil {
				updates = append(updates, watcher.StartWatcher(dir))
			}
		}
		merged := mergeUpdates(updates)

		go func() {
			for {
				changed := []string{<-merged}
			rootFor:
				for {
					select {
					case p := <-merged:
						changed = append(changed, p)
						continue
					case <-time.After(time.Millisecond * 500):
						break rootFor
					}
				}
				for _, p := range changed {
					s.store.FileChanged(p)
				}
				if err := s.buildtool.Build(); err != nil {
					tlogger.Error("msg", "Rebuild failed", "err", err)
					continue
				}
				s.TriggerReload()
			}
		}()
	}

	r := mux.NewRouter()
	r.PathPrefix("/").HandlerFunc(s.fileServer(s.buildDir, s.override404))

	// We use println here so the address can be copied or opened directly from the terminal
	fmt.Println("Listening on http://localhost:" + s.port)

	return http.ListenAndServe(":"+s.port, r)
}

func mergeUpdates(chans []<-chan string) <-chan string {
	if len(chans) == 1 {
		return chans[0]
	}
	out := make(chan string, 100)
	for _, ch := range chans {
		go func(ch <-chan string) {
			for p := range ch {
				out <- p
			}
		}(ch)
	}
	return out
}

func (s *Server) fileServer(dir string, override404 string) func(http.ResponseWriter, *http.Request) {
	if override404 != "" && !strings.HasPrefix(override404, "/") {
		override404 = "/" + override404
	}

	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/__internal/livereload" {
			s.livereloadHandler(w, r)
			return
		}
	begin:
		upath := r.URL.Path
		if !strings.HasPrefix(upath, "/") {
			upath = "/" + upath
			r.URL.Path = upath
		}

		// the sitemap knows the canonical destination, index convention
		// included; fall back to plain file probing for untracked paths
		upath = s.urlresolver.FullPath(path.Clean(upath))

		fullName := filepath.Join(dir, filepath.FromSlash(upath))

		if fullName[len(fullName)-1] == '/' {
			fullName = filepath.Join(fullName, indexPage)
		}

		info, err := os.Stat(fullName)

		valid := false
		if err != nil || info.IsDir() {
			if err != nil && !os.IsNotExist(err) {
				w.WriteHeader(500)
				w.Write([]byte("Internal error: can't open file: " + err.Error()))
				return
			}

			info, err = os.Stat(fullName + ".html")
			if err != nil || info.IsDir() {
				if err != nil && !os.IsNotExist(err) {
					w.WriteHeader(500)
					w.Write([]byte("Internal error: can't open file: " + err.Error()))
					return
				}

				info, err := os.Stat(filepath.Join(fullName, indexPage))
				if err != nil || info.IsDir() {
					if err != nil && !os.IsNotExist(err) {
						w.WriteHeader(500)
						w.Write([]byte("Internal error: can't open file: " + err.Error()))
					}
				} else {
					fullName = filepath.Join(fullName, indexPage)
					valid = true
				}
			} else {
				fullName = fullName + ".html"
				valid = true
			}
		} else {
			valid = true
		}

		if !valid {
			if override404 != "" && r.URL.Path != override404 {
				r.URL.Path = override404
				goto begin
			}
			w.WriteHeader(404)
			w.Write([]byte("404 page not found"))
			return
		}

		content, err := os.Open(fullName)
		if err != nil {
			w.WriteHeader(500)
			w.Write([]byte("Internal error: can't open file"))
			return
		}
		defer content.Close()

		ctype := mime.TypeByExtension(filepath.Ext(fullName))
		if ctype == "" {
			// read a chunk to decide between utf-8 text and binary
			var buf [512]byte
			n, _ := io.ReadFull(content, buf[:])
			ctype = http.DetectContentType(buf[:n])
			_, err := content.Seek(0, io.SeekStart) // rewind to output whole file
			if err != nil {
				w.WriteHeader(500)
				w.Write([]byte("Internal error: can't seek file: " + err.Error()))
			}
		}
		w.Header().Set("Content-Type", ctype)
		io.Copy(w, content)
		if strings.HasPrefix(ctype, "text/html") {
			_, err = w.Write(liveReloadScript)
			if err != nil {
				tlogger.Error("msg", "could not live reload", "error", err)
			}
		}
	}
}

const indexPage = "index.html"

func (s *Server) livereloadHandler(w http.ResponseWriter, r *http.Request) {
	tlogger.Debug("msg", "WS Established")

	c, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		w.WriteHeader(500)
		w.Write([]byte(err.Error()))
		return
	}
	defer c.Close()
	waitCh := s.reloadBroker.Subscribe()
	<-waitCh
	err = c.WriteMessage(websocket.TextMessage, []byte("reload"))
	if err != nil {
		tlogger.Warn("msg", "Reload socket error", "error", err)
	}
	s.reloadBroker.Unsubscribe(waitCh)
}
