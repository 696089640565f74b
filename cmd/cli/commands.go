package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/wadjakorntonsri/biolink/pkg/adapters/repository/sqlstore"
	"github.com/wadjakorntonsri/biolink/pkg/core/domain"
	"github.com/wadjakorntonsri/biolink/pkg/core/services"
	"github.com/wadjakorntonsri/biolink/pkg/ports"
)

type opener func(ctx context.Context) (*sqlstore.Repository, error)

// boardDump is the export file format: one user's profile and board.
type boardDump struct {
	Profile     *domain.Profile     `json:"profile"`
	Collections []domain.Collection `json:"collections"`
	Links       []domain.Link       `json:"links"`
}

type importResult struct {
	Profiles, Collections, Links, Skipped int
}

func exportCmd(open opener) *cobra.Command {
	var userID string

	command := &cobra.Command{
		Use:     "export",
		Short:   "dump a user's profile, collections and links as JSON",
		Example: "biolink export --user <profile-id> > board.json",
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := open(cmd.Context())
			if err != nil {
				return err
			}
			defer repo.Close()
			return exportBoard(cmd.Context(), repo, userID, cmd.OutOrStdout())
		},
	}

	command.Flags().StringVarP(&userID, "user", "u", "", "profile id to export")
	_ = command.MarkFlagRequired("user")
	return command
}

func importCmd(open opener, log zerolog.Logger) *cobra.Command {
	var file string

	command := &cobra.Command{
		Use:     "import",
		Short:   "load a board dump, skipping rows that already exist",
		Example: "biolink import --file board.json",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(file)
			if err != nil {
				return fmt.Errorf("open %s: %w", file, err)
			}
			defer f.Close()

			repo, err := open(cmd.Context())
			if err != nil {
				return err
			}
			defer repo.Close()

			res, err := importBoard(cmd.Context(), repo, f, log)
			if err != nil {
				return err
			}
			log.Info().
				Int("profiles", res.Profiles).
				Int("collections", res.Collections).
				Int("links", res.Links).
				Int("skipped", res.Skipped).
				Msg("import finished")
			return nil
		},
	}

	command.Flags().StringVarP(&file, "file", "f", "", "JSON file to import")
	_ = command.MarkFlagRequired("file")
	return command
}

func renumberCmd(open opener, log zerolog.Logger) *cobra.Command {
	var userID string

	command := &cobra.Command{
		Use:   "renumber",
		Short: "rewrite positions densely from 0 in their current order",
		Long: `renumber repairs position drift left by bucket moves and by batches
that were only partially written. Every bucket and the collection list are
renumbered 0..n-1 keeping (position, created_at) order.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := open(cmd.Context())
			if err != nil {
				return err
			}
			defer repo.Close()

			update, err := services.NewOrderingService(repo, log).Renumber(cmd.Context(), userID)
			if err != nil {
				return err
			}
			log.Info().Str("user_id", userID).Int("rows", len(update.Sync.Rows)).Msg("renumbered")
			return nil
		},
	}

	command.Flags().StringVarP(&userID, "user", "u", "", "profile id to renumber")
	_ = command.MarkFlagRequired("user")
	return command
}

func exportBoard(ctx context.Context, store ports.Store, userID string, w io.Writer) error {
	profile, err := store.GetProfile(ctx, userID)
	if err != nil {
		return err
	}
	if profile == nil {
		return fmt.Errorf("export %s: %w", userID, domain.ErrProfileNotFound)
	}

	collections, err := store.ListCollections(ctx, userID, nil)
	if err != nil {
		return err
	}
	links, err := store.ListLinks(ctx, userID, nil)
	if err != nil {
		return err
	}

	dump := boardDump{
		Profile:     profile,
		Collections: append([]domain.Collection{}, collections...),
		Links:       append([]domain.Link{}, links...),
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(dump)
}

func importBoard(ctx context.Context, store ports.Store, r io.Reader, log zerolog.Logger) (importResult, error) {
	var res importResult
	var dump boardDump
	if err := json.NewDecoder(r).Decode(&dump); err != nil {
		return res, fmt.Errorf("decode dump: %w", err)
	}

	if dump.Profile != nil {
		existing, err := store.GetProfile(ctx, dump.Profile.ID)
		if err != nil {
			return res, err
		}
		if existing == nil {
			if err := store.CreateProfile(ctx, dump.Profile); err != nil {
				return res, fmt.Errorf("import profile %s: %w", dump.Profile.ID, err)
			}
			res.Profiles++
		} else {
			res.Skipped++
		}
	}

	for i := range dump.Collections {
		c := &dump.Collections[i]
		existing, err := store.GetCollection(ctx, c.UserID, c.ID)
		if err != nil {
			return res, err
		}
		if existing != nil {
			log.Debug().Str("id", c.ID).Msg("skipping existing collection")
			res.Skipped++
			continue
		}
		if err := store.CreateCollection(ctx, c); err != nil {
			log.Error().Err(err).Str("id", c.ID).Msg("failed to import collection")
			continue
		}
		res.Collections++
	}

	for i := range dump.Links {
		l := &dump.Links[i]
		existing, err := store.GetLink(ctx, l.UserID, l.ID)
		if err != nil {
			return res, err
		}
		if existing != nil {
			log.Debug().Str("id", l.ID).Msg("skipping existing link")
			res.Skipped++
			continue
		}
		if err := store.CreateLink(ctx, l); err != nil {
			log.Error().Err(err).Str("id", l.ID).Msg("failed to import link")
			continue
		}
		res.Links++
	}

	return res, nil
}
