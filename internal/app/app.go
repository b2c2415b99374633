package app

import (
	"fmt"
	"html/template"
	"net/http"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gormpg "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/phenrril/munek/internal/adapters/httpserver"
	"github.com/phenrril/munek/internal/adapters/llm/groq"
	"github.com/phenrril/munek/internal/adapters/notify"
	"github.com/phenrril/munek/internal/adapters/repo/localstore"
	"github.com/phenrril/munek/internal/adapters/repo/postgres"
	"github.com/phenrril/munek/internal/adapters/storage/localfs"
	"github.com/phenrril/munek/internal/adapters/storage/memory"
	"github.com/phenrril/munek/internal/catalog"
	"github.com/phenrril/munek/internal/domain"
	"github.com/phenrril/munek/internal/usecase"
	"github.com/phenrril/munek/internal/views"
)

type App struct {
	Config      Config
	DB          *gorm.DB
	KV          domain.KVStore
	Tmpl        *template.Template
	Catalog     *catalog.Catalog
	OrderUC     *usecase.OrderUC
	Storefronts *Storefronts
	OAuthConfig *oauth2.Config
}

func NewApp(cfg Config) (*App, error) {
	kv, db, err := openStorage(cfg)
	if err != nil {
		return nil, err
	}
	cat := catalog.Default()

	shipping := usecase.ShippingPolicy{FreeThreshold: cfg.FreeShippingThreshold, FlatFee: cfg.ShippingCost}
	orders := &usecase.OrderUC{
		Orders:   localstore.NewOrderRepo(kv),
		Shipping: shipping,
		Notifier: newNotifier(cfg),
	}

	var llm domain.ChatCompleter
	if cfg.GroqAPIKey != "" {
		llm = groq.New(cfg.GroqAPIKey, cfg.GroqBaseURL, cfg.GroqModel)
	} else {
		log.Warn().Msg("GROQ_API_KEY vacío, el asistente responderá con la disculpa")
	}

	var oauthCfg *oauth2.Config
	if cfg.GoogleClientID != "" && cfg.GoogleClientSecret != "" {
		oauthCfg = &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.BaseURL + "/auth/google/callback",
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		}
	}

	var tmpl *template.Template
	if cfg.IsDev() && dirExists("internal/views") {
		tmpl, err = views.ParseDir("internal/views")
	} else {
		tmpl, err = views.Parse()
	}
	if err != nil {
		return nil, fmt.Errorf("plantillas: %w", err)
	}

	app := &App{
		Config:      cfg,
		DB:          db,
		KV:          kv,
		Tmpl:        tmpl,
		Catalog:     cat,
		OrderUC:     orders,
		OAuthConfig: oauthCfg,
	}
	app.Storefronts = &Storefronts{
		KV:           kv,
		Catalog:      cat,
		Users:        localstore.NewUserRepo(kv),
		Orders:       orders,
		LLM:          llm,
		AuthLatency:  cfg.AuthLatency,
		ChatTimeout:  cfg.ChatTimeout,
		ChatAutoAdd:  cfg.ChatAutoAdd,
		FreeShipping: cfg.FreeShippingThreshold,
	}
	return app, nil
}

func (a *App) HTTPHandler() http.Handler {
	return httpserver.New(httpserver.Config{
		Templates:      a.Tmpl,
		Catalog:        a.Catalog,
		Storefronts:    a.Storefronts,
		OAuth:          a.OAuthConfig,
		SessionKey:     a.Config.SessionKey,
		WhatsAppNumber: a.Config.WhatsAppNumber,
		Shipping:       a.OrderUC.Shipping,
		SecureCookies:  !a.Config.IsDev(),
	})
}

// Close libera storefronts y la conexión a la base, si hay.
func (a *App) Close() error {
	a.Storefronts.Close()
	if a.DB == nil {
		return nil
	}
	sqlDB, err := a.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func openStorage(cfg Config) (domain.KVStore, *gorm.DB, error) {
	switch cfg.StorageDriver {
	case "memory":
		return memory.New(), nil, nil
	case "localfs", "":
		store, err := localfs.New(cfg.StorageDir)
		if err != nil {
			return nil, nil, fmt.Errorf("storage localfs: %w", err)
		}
		return store, nil, nil
	case "postgres":
		db, err := gorm.Open(gormpg.Open(cfg.DatabaseDSN), &gorm.Config{})
		if err != nil {
			return nil, nil, fmt.Errorf("conectar a la base: %w", err)
		}
		store := postgres.NewKVStore(db)
		if err := store.Migrate(); err != nil {
			return nil, nil, fmt.Errorf("migrar storage: %w", err)
		}
		return store, db, nil
	default:
		return nil, nil, fmt.Errorf("STORAGE_DRIVER desconocido: %q", cfg.StorageDriver)
	}
}

// newNotifier arma los avisos de orden: Telegram primero y e-mail como respaldo.
func newNotifier(cfg Config) domain.OrderNotifier {
	var chain notify.Fallback
	if tg := notify.NewTelegram(cfg.TelegramToken, cfg.TelegramChatIDs); tg != nil {
		chain = append(chain, tg)
	}
	smtp := notify.SMTPConfig{Host: cfg.SMTPHost, Port: cfg.SMTPPort, User: cfg.SMTPUser, Pass: cfg.SMTPPass, To: cfg.OrderNotifyEmail}
	if smtp.Enabled() {
		email, err := notify.NewEmail(smtp)
		if err != nil {
			log.Warn().Err(err).Msg("SMTP mal configurado, se omite envío de email")
		} else {
			chain = append(chain, email)
		}
	} else {
		log.Warn().Msg("SMTP no configurado, se omite envío de email")
	}
	if len(chain) == 0 {
		return nil
	}
	return chain
}

func dirExists(dir string) bool {
	st, err := os.Stat(filepath.Clean(dir))
	return err == nil && st.IsDir()
}
