package seed

import (
	"context"
	"errors"

	"github.com/postigiusti/bacheca/internal/app/models"
	"github.com/postigiusti/bacheca/internal/app/repositories"
	"github.com/postigiusti/bacheca/internal/pkg/apperrors"
	"github.com/postigiusti/bacheca/internal/pkg/auth"
	"github.com/postigiusti/bacheca/internal/pkg/logger"
)

// The twenty Italian regions with their provinces.
var regions = map[string][]string{
	"Abruzzo":               {"Chieti", "L'Aquila", "Pescara", "Teramo"},
	"Basilicata":            {"Matera", "Potenza"},
	"Calabria":              {"Catanzaro", "Cosenza", "Crotone", "Reggio Calabria", "Vibo Valentia"},
	"Campania":              {"Avellino", "Benevento", "Caserta", "Napoli", "Salerno"},
	"Emilia-Romagna":        {"Bologna", "Ferrara", "Forlì-Cesena", "Modena", "Parma", "Piacenza", "Ravenna", "Reggio Emilia", "Rimini"},
	"Friuli-Venezia Giulia": {"Gorizia", "Pordenone", "Trieste", "Udine"},
	"Lazio":                 {"Frosinone", "Latina", "Rieti", "Roma", "Viterbo"},
	"Liguria":               {"Genova", "Imperia", "La Spezia", "Savona"},
	"Lombardia":             {"Bergamo", "Brescia", "Como", "Cremona", "Lecco", "Lodi", "Mantova", "Milano", "Monza e Brianza", "Pavia", "Sondrio", "Varese"},
	"Marche":                {"Ancona", "Ascoli Piceno", "Fermo", "Macerata", "Pesaro e Urbino"},
	"Molise":                {"Campobasso", "Isernia"},
	"Piemonte":              {"Alessandria", "Asti", "Biella", "Cuneo", "Novara", "Torino", "Verbano-Cusio-Ossola", "Vercelli"},
	"Puglia":                {"Bari", "Barletta-Andria-Trani", "Brindisi", "Foggia", "Lecce", "Taranto"},
	"Sardegna":              {"Cagliari", "Nuoro", "Oristano", "Sassari", "Sud Sardegna"},
	"Sicilia":               {"Agrigento", "Caltanissetta", "Catania", "Enna", "Messina", "Palermo", "Ragusa", "Siracusa", "Trapani"},
	"Toscana":               {"Arezzo", "Firenze", "Grosseto", "Livorno", "Lucca", "Massa-Carrara", "Pisa", "Pistoia", "Prato", "Siena"},
	"Trentino-Alto Adige":   {"Bolzano", "Trento"},
	"Umbria":                {"Perugia", "Terni"},
	"Valle d'Aosta":         {"Aosta"},
	"Veneto":                {"Belluno", "Padova", "Rovigo", "Treviso", "Venezia", "Verona", "Vicenza"},
}

// Options controls what the seeder creates
type Options struct {
	AdminEmail    string
	AdminPassword string
	AdminNickname string
}

// Run populates geography data and ensures the default admin exists.
// It is idempotent and safe to call on every startup.
func Run(ctx context.Context, repos *repositories.Repositories, opts Options) error {
	if err := seedGeography(ctx, repos.Geo); err != nil {
		return err
	}

	if opts.AdminEmail != "" && opts.AdminPassword != "" {
		if err := seedAdmin(ctx, repos.User, opts); err != nil {
			return err
		}
	}

	return nil
}

func seedGeography(ctx context.Context, geo *repositories.GeoRepository) error {
	existing, err := geo.GetAllRegions(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		logger.Debug().Int("regions", len(existing)).Msg("Geography already seeded")
		return nil
	}

	for name, provinces := range regions {
		regionID, err := geo.CreateRegion(ctx, name)
		if err != nil {
			return err
		}
		for _, province := range provinces {
			if _, err := geo.CreateProvince(ctx, regionID, province); err != nil {
				return err
			}
		}
	}

	logger.Info().Int("regions", len(regions)).Msg("Geography seeded")
	return nil
}

func seedAdmin(ctx context.Context, users *repositories.UserRepository, opts Options) error {
	_, err := users.GetUserByEmail(ctx, opts.AdminEmail)
	if err == nil {
		return nil
	}
	if !errors.Is(err, apperrors.ErrUserNotFound) {
		return err
	}

	hashed, err := auth.HashPassword(opts.AdminPassword)
	if err != nil {
		return err
	}

	nickname := opts.AdminNickname
	if nickname == "" {
		nickname = "admin"
	}

	admin := &models.User{
		Email:    opts.AdminEmail,
		Password: hashed,
		Nickname: nickname,
		RoleType: models.RoleAdmin,
		IsActive: true,
	}

	if _, err := users.CreateUser(ctx, admin); err != nil {
		return err
	}

	logger.Info().Str("email", opts.AdminEmail).Msg("Default admin created")
	return nil
}
