package server

import (
	"encoding/json"
	"errors"
	"sync"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"thermo/body"
	"thermo/calculator"
	"thermo/model"
	"thermo/series"
)

var errAlreadyRunning = errors.New("simulation already running")

// Hub owns one client connection: it translates request frames into engine
// calls and streams per-step rows back. A long exposure is executed as
// repeated single-step simulate calls so a stop request takes effect between
// steps, never inside one.
type Hub struct {
	conn *websocket.Conn
	e    calculator.Engine

	msg  chan model.Msg
	out  chan model.Msg
	done chan struct{}

	// recent keeps the newest rows so a client can re-sync after a hiccup.
	recent series.Store

	mu      sync.Mutex
	running bool
	// stopSent guards StopSignal: the stop channel is closed at most once per
	// run, however many stop frames arrive.
	stopSent bool
}

func NewHub(conn *websocket.Conn) *Hub {
	return &Hub{
		conn:   conn,
		msg:    make(chan model.Msg, 10),
		out:    make(chan model.Msg, 64),
		done:   make(chan struct{}),
		recent: series.NewRing(calculator.Cfg().RingCapacity),
	}
}

func (h *Hub) close() {
	h.requestStop()
	close(h.done)
}

// requestStop signals the active run, if any. Safe to call repeatedly; only
// the first call per run closes the stop channel.
func (h *Hub) requestStop() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.running && !h.stopSent {
		h.stopSent = true
		h.e.GetCalcHub().StopSignal()
	}
}

func (h *Hub) handleResponse() {
	for {
		select {
		case reply := <-h.out:
			if err := h.conn.WriteJSON(&reply); err != nil {
				log.Warn("write failed: ", err)
			}
		case <-h.done:
			return
		}
	}
}

func (h *Hub) handleRequest() {
	for {
		select {
		case msg := <-h.msg:
			h.dispatch(msg)
		case <-h.done:
			return
		}
	}
}

func (h *Hub) dispatch(msg model.Msg) {
	switch msg.Type {
	case "profile":
		var req model.ProfileReq
		if err := json.Unmarshal([]byte(msg.Content), &req); err != nil {
			h.fail(err)
			return
		}
		e, err := buildEngine(req)
		if err != nil {
			h.fail(err)
			return
		}
		h.mu.Lock()
		if h.running {
			h.mu.Unlock()
			h.fail(errAlreadyRunning)
			return
		}
		h.e = e
		h.mu.Unlock()
		h.reply("profile_set", "")
	case "env":
		if h.e == nil {
			h.e = calculator.NewDefaultEngine()
		}
		var req model.EnvReq
		if err := json.Unmarshal([]byte(msg.Content), &req); err != nil {
			h.fail(err)
			return
		}
		if err := applyEnv(h.e, req); err != nil {
			h.fail(err)
			return
		}
		h.reply("env_set", "")
	case "simulate":
		if h.e == nil {
			h.e = calculator.NewDefaultEngine()
		}
		var req model.RunReq
		if err := json.Unmarshal([]byte(msg.Content), &req); err != nil {
			h.fail(err)
			return
		}
		h.mu.Lock()
		if h.running {
			h.mu.Unlock()
			h.fail(errAlreadyRunning)
			return
		}
		h.running = true
		h.stopSent = false
		h.e.GetCalcHub().StartSignal()
		h.mu.Unlock()
		go h.run(req)
	case "stop":
		h.requestStop()
	default:
		h.reply("error", "unknown message type "+msg.Type)
	}
}

// run executes one exposure step by step, streaming each landed row.
func (h *Hub) run(req model.RunReq) {
	defer func() {
		h.mu.Lock()
		h.running = false
		h.mu.Unlock()
	}()

	ch := h.e.GetCalcHub()
	for n := 0; n < req.Times; n++ {
		select {
		case <-ch.Stop:
			h.reply("stopped", "")
			return
		default:
		}
		if err := h.e.Simulate(1, req.Dtime); err != nil {
			h.fail(err)
			return
		}
		select {
		case row := <-ch.Rows:
			h.recent.Append(row)
			data, err := json.Marshal(row)
			if err != nil {
				log.Warn("marshal failed: ", err)
				continue
			}
			h.reply("row", string(data))
		default:
		}
	}

	data, err := json.Marshal(h.e.BuildData())
	if err != nil {
		h.fail(err)
		return
	}
	h.reply("done", string(data))
}

func (h *Hub) reply(kind, content string) {
	select {
	case h.out <- model.Msg{Type: kind, Content: content}:
	case <-h.done:
	}
}

func (h *Hub) fail(err error) {
	log.Warn("request failed: ", err)
	h.reply("error", err.Error())
}

// buildEngine maps the wire profile onto the documented defaults; zero-valued
// fields keep their default.
func buildEngine(req model.ProfileReq) (calculator.Engine, error) {
	p := body.DefaultProfile()
	if req.Height != 0 {
		p.Height = req.Height
	}
	if req.Weight != 0 {
		p.Weight = req.Weight
	}
	if req.Fat != 0 {
		p.Fat = req.Fat
	}
	if req.Age != 0 {
		p.Age = req.Age
	}
	if req.CI != 0 {
		p.CI = req.CI
	}
	if req.Sex != "" {
		sex, err := model.ParseSex(req.Sex)
		if err != nil {
			return nil, err
		}
		p.Sex = sex
	}
	if req.BMREquation != "" {
		p.BMREquation = req.BMREquation
	}
	if req.BSAEquation != "" {
		p.BSAEquation = req.BSAEquation
	}
	return calculator.NewEngine(p)
}

// applyEnv forwards the present fields in a fixed order; absent fields stay
// sticky. Ta and Tr present together go through the paired setter so they
// clear an engaged operative shortcut.
func applyEnv(e calculator.Engine, req model.EnvReq) error {
	if req.Posture != nil {
		p, err := model.ParsePosture(*req.Posture)
		if err != nil {
			return err
		}
		if err := e.SetPosture(p); err != nil {
			return err
		}
	}
	if req.PAR != nil {
		if err := e.SetPAR(*req.PAR); err != nil {
			return err
		}
	}
	switch {
	case req.Ta != nil && req.Tr != nil:
		if err := e.SetTaTr(*req.Ta, *req.Tr); err != nil {
			return err
		}
	case req.Ta != nil:
		if err := e.SetTa(*req.Ta...); err != nil {
			return err
		}
	case req.Tr != nil:
		if err := e.SetTr(*req.Tr...); err != nil {
			return err
		}
	}
	if req.To != nil {
		if err := e.SetTo(*req.To...); err != nil {
			return err
		}
	}
	if req.Va != nil {
		if err := e.SetVa(*req.Va...); err != nil {
			return err
		}
	}
	if req.RH != nil {
		if err := e.SetRH(*req.RH...); err != nil {
			return err
		}
	}
	if req.Icl != nil {
		if err := e.SetIcl(*req.Icl...); err != nil {
			return err
		}
	}
	return nil
}
