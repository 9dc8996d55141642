package main

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"flag"
	"fmt"
	"image"
	"image/png"
	"log"
	"math"
	"net/http"
	"strconv"
	"sync"

	"github.com/Flokey82/genworldplanar"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
)

var (
	terrain   *genworldplanar.Terrain
	terrainMu sync.RWMutex
)

var (
	seed       string  = "42"
	width      float64 = 400
	height     float64 = 400
	pdsMaxDist float64 = 4
	addr       string  = ":3333"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Connected websocket clients. Writes to a connection are serialized by its
// mutex.
var (
	clients   = make(map[*websocket.Conn]*sync.Mutex)
	clientsMu sync.RWMutex
)

// stageMessage is sent to all websocket clients after every completed stage.
type stageMessage struct {
	Seed  int64                      `json:"seed"`
	Stage genworldplanar.StageTiming `json:"stage"`
	Done  bool                       `json:"done"`
}

func init() {
	flag.StringVar(&seed, "seed", seed, "the terrain seed")
	flag.Float64Var(&width, "width", width, "map width")
	flag.Float64Var(&height, "height", height, "map height")
	flag.Float64Var(&pdsMaxDist, "pds_max_distance", pdsMaxDist, "minimum point distance")
	flag.StringVar(&addr, "addr", addr, "listen address")
}

func main() {
	flag.Parse()
	if err := generate(seed); err != nil {
		log.Fatal(err)
	}

	// Start the server.
	router := mux.NewRouter()
	router.HandleFunc("/layers/{layer}.png", layerHandler)
	router.HandleFunc("/geojson/{kind}", geoJSONHandler)
	router.HandleFunc("/cell/{x}/{y}", cellHandler)
	router.HandleFunc("/path/{from}/{to}", pathHandler)
	router.HandleFunc("/stats", statsHandler)
	router.HandleFunc("/generate/{seed}", generateHandler).Methods(http.MethodPost)
	router.HandleFunc("/ws", wsHandler)
	router.PathPrefix("/").Handler(http.FileServer(http.Dir("static")))
	log.Fatal(http.ListenAndServe(addr, router))
}

// generate builds a new terrain and reports every stage to the websocket
// clients.
func generate(s string) error {
	cfg := genworldplanar.NewConfig()
	cfg.Seed = genworldplanar.SeedFromString(s)
	cfg.Width = width
	cfg.Height = height
	cfg.PDSMaxDistance = pdsMaxDist

	t, err := genworldplanar.GenerateWithProgress(cfg, func(st genworldplanar.StageTiming) {
		broadcast(stageMessage{Seed: int64(cfg.Seed), Stage: st})
	})
	if err != nil {
		return err
	}
	terrainMu.Lock()
	terrain = t
	terrainMu.Unlock()
	broadcast(stageMessage{Seed: int64(cfg.Seed), Done: true})
	return nil
}

func current() *genworldplanar.Terrain {
	terrainMu.RLock()
	defer terrainMu.RUnlock()
	return terrain
}

// maxScale limits the size of rendered layers.
const maxScale = 8

// parseScale returns the image scale given in a query, 1 if it is empty.
// Scales above maxScale are clamped.
func parseScale(s string) (float64, error) {
	if s == "" {
		return 1, nil
	}
	scale, err := strconv.ParseFloat(s, 64)
	if err != nil || !(scale > 0) {
		return 0, fmt.Errorf("invalid scale %q", s)
	}
	return math.Min(scale, maxScale), nil
}

func layerHandler(res http.ResponseWriter, req *http.Request) {
	layer := mux.Vars(req)["layer"]
	scale, err := parseScale(req.URL.Query().Get("scale"))
	if err != nil {
		http.Error(res, err.Error(), http.StatusBadRequest)
		return
	}
	img, err := current().RenderImage(layer, scale)
	if err != nil {
		http.Error(res, err.Error(), http.StatusNotFound)
		return
	}
	writeImage(res, &img)
}

func geoJSONHandler(res http.ResponseWriter, req *http.Request) {
	t := current()
	var data []byte
	var err error
	switch mux.Vars(req)["kind"] {
	case "cells":
		data, err = t.GeoJSONCells()
	case "rivers":
		data, err = t.GeoJSONRivers()
	case "wind":
		data, err = t.GeoJSONWind()
	case "coastlines":
		data, err = t.GeoJSONCoastlines()
	default:
		http.NotFound(res, req)
		return
	}
	if err != nil {
		http.Error(res, err.Error(), http.StatusInternalServerError)
		return
	}
	writeGzip(res, "application/json", data)
}

func cellHandler(res http.ResponseWriter, req *http.Request) {
	vars := mux.Vars(req)
	x, err := strconv.ParseFloat(vars["x"], 64)
	if err != nil {
		http.Error(res, "invalid x", http.StatusBadRequest)
		return
	}
	y, err := strconv.ParseFloat(vars["y"], 64)
	if err != nil {
		http.Error(res, "invalid y", http.StatusBadRequest)
		return
	}
	t := current()
	data, err := t.GeoJSONCell(t.Mesh.FindCell(x, y))
	if err != nil {
		http.Error(res, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(res, data)
}

func pathHandler(res http.ResponseWriter, req *http.Request) {
	vars := mux.Vars(req)
	from, err := strconv.Atoi(vars["from"])
	if err != nil {
		http.Error(res, "invalid from", http.StatusBadRequest)
		return
	}
	to, err := strconv.Atoi(vars["to"])
	if err != nil {
		http.Error(res, "invalid to", http.StatusBadRequest)
		return
	}
	path, cost, err := current().FindPath(from, to)
	if err != nil {
		http.Error(res, err.Error(), http.StatusNotFound)
		return
	}
	data, err := json.Marshal(struct {
		Path []int   `json:"path"`
		Cost float64 `json:"cost"`
	}{path, cost})
	if err != nil {
		http.Error(res, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(res, data)
}

func statsHandler(res http.ResponseWriter, req *http.Request) {
	data, err := json.Marshal(current().Stats())
	if err != nil {
		http.Error(res, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(res, data)
}

func generateHandler(res http.ResponseWriter, req *http.Request) {
	if err := generate(mux.Vars(req)["seed"]); err != nil {
		http.Error(res, err.Error(), http.StatusBadRequest)
		return
	}
	statsHandler(res, req)
}

func wsHandler(res http.ResponseWriter, req *http.Request) {
	conn, err := upgrader.Upgrade(res, req, nil)
	if err != nil {
		log.Println("WebSocket upgrade error:", err)
		return
	}
	defer conn.Close()

	connMu := &sync.Mutex{}
	clientsMu.Lock()
	clients[conn] = connMu
	clientsMu.Unlock()
	defer func() {
		clientsMu.Lock()
		delete(clients, conn)
		clientsMu.Unlock()
	}()

	// Replay the stages of the current terrain.
	t := current()
	connMu.Lock()
	for _, st := range t.Stages {
		if err := conn.WriteJSON(stageMessage{Seed: t.Seed, Stage: st}); err != nil {
			connMu.Unlock()
			return
		}
	}
	err = conn.WriteJSON(stageMessage{Seed: t.Seed, Done: true})
	connMu.Unlock()
	if err != nil {
		return
	}

	// Keep reading until the client goes away.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func broadcast(msg stageMessage) {
	clientsMu.RLock()
	defer clientsMu.RUnlock()
	for conn, mu := range clients {
		mu.Lock()
		if err := conn.WriteJSON(msg); err != nil {
			log.Println("WebSocket write error:", err)
		}
		mu.Unlock()
	}
}

// writeImage writes the image to the response writer.
func writeImage(w http.ResponseWriter, img *image.Image) {
	buffer := new(bytes.Buffer)
	if err := png.Encode(buffer, *img); err != nil {
		log.Println("unable to encode image.")
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(buffer.Bytes())))
	if _, err := w.Write(buffer.Bytes()); err != nil {
		log.Println("unable to write image.")
	}
}

func writeJSON(w http.ResponseWriter, data []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Write(data)
}

func writeGzip(w http.ResponseWriter, contentType string, dat []byte) {
	var b bytes.Buffer
	gz := gzip.NewWriter(&b)
	if _, err := gz.Write(dat); err != nil {
		panic(err)
	}
	if err := gz.Close(); err != nil {
		panic(err)
	}
	data := b.Bytes()
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Encoding", "gzip")
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Write(data)
}
