package web

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Zachkp/spotlight/internal/config"
	"github.com/Zachkp/spotlight/internal/logging"
	"github.com/Zachkp/spotlight/internal/store"
)

const adminCookie = "admin_token"

// admin is the privacy-conscious admin area: hashed visitor addresses only,
// a per-process token cookie, and no raw IPs in logs.
type admin struct {
	creds     config.AdminConfig
	token     string
	db        Analytics
	tracker   *tracker
	retention time.Duration
	now       func() time.Time
}

func newAdmin(creds config.AdminConfig, retention time.Duration, db Analytics, t *tracker) *admin {
	a := &admin{
		creds:     creds,
		token:     randomToken(),
		db:        db,
		tracker:   t,
		retention: retention,
		now:       time.Now,
	}
	logging.L().Info("admin access available at /admin/login")
	if gin.Mode() == gin.DebugMode {
		logging.L().Debugw("admin token (dev only)", "token", a.token)
	}
	return a
}

func equal(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

func (a *admin) authMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(adminCookie)
		if err != nil || !equal(token, a.token) {
			c.Redirect(http.StatusFound, "/admin/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// cleanup deletes analytics older than the retention window.
func (a *admin) cleanup(ctx context.Context) {
	if a.db == nil || a.retention <= 0 {
		return
	}
	n, err := a.db.Cleanup(ctx, a.now().Add(-a.retention))
	if err != nil {
		logging.L().Errorw("privacy cleanup", "error", err)
		return
	}
	if n > 0 {
		logging.L().Infow("privacy cleanup removed old analytics", "rows", n, "older_than", a.retention)
	}
}

func (a *admin) routes(r *gin.Engine) {
	r.GET("/privacy", func(c *gin.Context) {
		c.HTML(http.StatusOK, "privacy.html", gin.H{"title": "Privacy Policy", "retention": a.retention})
	})

	r.GET("/admin/login", func(c *gin.Context) {
		c.HTML(http.StatusOK, "admin-login.html", gin.H{"title": "Admin Login"})
	})

	r.POST("/admin/login", func(c *gin.Context) {
		username := c.PostForm("username")
		password := c.PostForm("password")

		// both comparisons always run
		userOK := equal(username, a.creds.Username)
		passOK := equal(password, a.creds.Password)
		client := a.tracker.hashIP(c.ClientIP())
		if userOK && passOK {
			c.SetSameSite(http.SameSiteStrictMode)
			c.SetCookie(adminCookie, a.token, 3600*24, "/admin", "", false, true)
			logging.L().Infow("admin login", "client", client)
			c.Redirect(http.StatusFound, "/admin/dashboard")
			return
		}
		logging.L().Warnw("failed admin login", "client", client)
		c.HTML(http.StatusUnauthorized, "admin-login.html", gin.H{"title": "Admin Login", "error": "Invalid credentials"})
	})

	r.GET("/admin/logout", func(c *gin.Context) {
		c.SetCookie(adminCookie, "", -1, "/admin", "", false, true)
		logging.L().Infow("admin logout", "client", a.tracker.hashIP(c.ClientIP()))
		c.Redirect(http.StatusFound, "/admin/login")
	})

	g := r.Group("/admin")
	g.Use(a.authMiddleware())

	g.GET("/dashboard", func(c *gin.Context) {
		stats, err := a.stats(c.Request.Context())
		if err != nil {
			logging.L().Errorw("loading admin stats", "error", err)
			c.HTML(http.StatusInternalServerError, "admin-error.html", gin.H{"error": "Failed to load statistics"})
			return
		}
		c.HTML(http.StatusOK, "admin-dashboard.html", gin.H{"stats": stats})
	})

	g.GET("/api/stats", func(c *gin.Context) {
		stats, err := a.stats(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, stats)
	})

	g.GET("/visitors", func(c *gin.Context) {
		if a.db == nil {
			c.HTML(http.StatusInternalServerError, "admin-error.html", gin.H{"error": "Analytics are disabled"})
			return
		}
		visitors, err := a.db.RecentVisitors(c.Request.Context(), 200)
		if err != nil {
			logging.L().Errorw("loading visitors", "error", err)
			c.HTML(http.StatusInternalServerError, "admin-error.html", gin.H{"error": "Failed to load visitors"})
			return
		}
		c.HTML(http.StatusOK, "admin-visitors.html", gin.H{"visitors": visitors})
	})

	g.POST("/privacy/cleanup", func(c *gin.Context) {
		go a.cleanup(context.WithoutCancel(c.Request.Context()))
		c.JSON(http.StatusOK, gin.H{"message": "Privacy cleanup initiated"})
	})

	g.GET("/export/stats", func(c *gin.Context) {
		stats, err := a.stats(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Header("Content-Disposition", "attachment; filename=admin-stats.json")
		logging.L().Infow("admin stats exported", "client", a.tracker.hashIP(c.ClientIP()))
		c.JSON(http.StatusOK, stats)
	})

	g.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

var errAnalyticsDisabled = errors.New("analytics are disabled")

func (a *admin) stats(ctx context.Context) (*store.Stats, error) {
	if a.db == nil {
		return nil, errAnalyticsDisabled
	}
	return a.db.Stats(ctx, a.now())
}
