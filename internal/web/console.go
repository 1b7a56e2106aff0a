package web

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/spotlight/internal/console"
	"github.com/Zachkp/spotlight/internal/content"
	"github.com/Zachkp/spotlight/internal/panels"
)

type commandJSON struct {
	ID          console.View `json:"id"`
	Label       string       `json:"label"`
	Description string       `json:"description"`
	Shortcut    string       `json:"shortcut"`
}

func toCommandJSON(cmd console.Command) commandJSON {
	return commandJSON{ID: cmd.ID, Label: cmd.Label, Description: cmd.Description, Shortcut: cmd.ShortcutKey}
}

// snapshot is the console state as the browser sees it. ActiveView is null
// while idle.
type snapshot struct {
	Query        string        `json:"query"`
	ActiveView   *console.View `json:"activeView"`
	InputFocused bool          `json:"inputFocused"`
	Commands     []commandJSON `json:"commands"`
	Suggestion   *commandJSON  `json:"suggestion,omitempty"`
}

type keyResponse struct {
	snapshot
	console.KeyResult
}

func newSnapshot(con *console.Console) snapshot {
	st := con.State()
	snap := snapshot{Query: st.Query, InputFocused: st.InputFocused, Commands: []commandJSON{}}
	if !st.Idle() {
		v := st.ActiveView
		snap.ActiveView = &v
	}
	for _, cmd := range con.FilteredCommands() {
		snap.Commands = append(snap.Commands, toCommandJSON(cmd))
	}
	if cmd, ok := con.Suggest(); ok {
		sj := toCommandJSON(cmd)
		snap.Suggestion = &sj
	}
	return snap
}

// withSession runs fn while holding the visitor's session.
func (s *Server) withSession(c *gin.Context, fn func(*session)) {
	id, _ := c.Cookie(sessionCookie)
	sess, created := s.sessions.acquire(id)
	if created {
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(sessionCookie, sess.id, int(s.cfg.Console.SessionTTL.Seconds()), "/", "", false, true)
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	fn(sess)
}

// respond renders the stage partial for HTMX requests and the JSON snapshot otherwise.
func (s *Server) respond(c *gin.Context, sess *session) {
	if c.GetHeader("HX-Request") == "true" {
		c.HTML(http.StatusOK, "stage", s.page(sess.console))
		return
	}
	c.JSON(http.StatusOK, newSnapshot(sess.console))
}

func (s *Server) handleSnapshot(c *gin.Context) {
	s.withSession(c, func(sess *session) {
		c.JSON(http.StatusOK, newSnapshot(sess.console))
	})
}

func (s *Server) handleKey(c *gin.Context) {
	var ev console.KeyEvent
	if err := c.ShouldBindJSON(&ev); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid key event"})
		return
	}
	s.withSession(c, func(sess *session) {
		res := sess.console.HandleKey(ev)
		observeKey(res)
		c.JSON(http.StatusOK, keyResponse{snapshot: newSnapshot(sess.console), KeyResult: res})
	})
}

func (s *Server) handleQuery(c *gin.Context) {
	var req struct {
		Query string `json:"query" form:"query"`
	}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query"})
		return
	}
	s.withSession(c, func(sess *session) {
		sess.console.SetQuery(req.Query)
		s.respond(c, sess)
	})
}

func (s *Server) handleFocus(c *gin.Context) {
	var req struct {
		Focused bool `json:"focused" form:"focused"`
	}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid focus"})
		return
	}
	s.withSession(c, func(sess *session) {
		sess.console.SetFocus(req.Focused)
		s.respond(c, sess)
	})
}

func (s *Server) handleActivate(c *gin.Context) {
	id := console.View(c.Param("id"))
	s.withSession(c, func(sess *session) {
		sess.console.Activate(id)
		s.respond(c, sess)
	})
}

func (s *Server) handleClose(c *gin.Context) {
	s.withSession(c, func(sess *session) {
		sess.console.Close()
		s.respond(c, sess)
	})
}

// pageData feeds the index and stage templates.
type pageData struct {
	Portfolio   content.Portfolio
	State       console.State
	Commands    []console.Command
	Suggestion  *console.Command
	Panel       *panels.Panel
	ShowPalette bool
	ShowStats   bool
	Shortcuts   string
}

func (s *Server) page(con *console.Console) pageData {
	st := con.State()
	d := pageData{
		Portfolio:   s.panels.Portfolio(),
		State:       st,
		Commands:    con.FilteredCommands(),
		ShowPalette: st.Idle() || st.InputFocused,
		ShowStats:   st.Idle() && st.Query == "",
		Shortcuts:   s.shortcuts(),
	}
	if cmd, ok := con.Suggest(); ok {
		d.Suggestion = &cmd
	}
	if p, ok := s.panels.Build(st.ActiveView); ok {
		d.Panel = &p
	}
	return d
}

// shortcuts lists every key the browser must claim synchronously.
func (s *Server) shortcuts() string {
	var b strings.Builder
	b.WriteString("K")
	for _, cmd := range s.catalog.Commands() {
		b.WriteString(cmd.ShortcutKey)
	}
	return b.String()
}

func (s *Server) handleIndex(c *gin.Context) {
	s.withSession(c, func(sess *session) {
		c.HTML(http.StatusOK, "index.html", s.page(sess.console))
	})
}

func (s *Server) handleStage(c *gin.Context) {
	s.withSession(c, func(sess *session) {
		c.HTML(http.StatusOK, "stage", s.page(sess.console))
	})
}

func (s *Server) handlePanel(c *gin.Context) {
	p, ok := s.panels.Build(console.View(c.Param("view")))
	if !ok {
		c.HTML(http.StatusNotFound, "not-found.html", gin.H{"view": c.Param("view")})
		return
	}
	c.HTML(http.StatusOK, "panel", p)
}
