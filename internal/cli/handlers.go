package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/loadstack/mongotap/internal/config"
	"github.com/loadstack/mongotap/internal/sink"
	"github.com/loadstack/mongotap/internal/source"
	"github.com/loadstack/mongotap/internal/state"
	"github.com/loadstack/mongotap/pkg/database"
	"github.com/loadstack/mongotap/pkg/models"
)

func runExtract(ctx context.Context, opts *ExtractOptions) error {
	cfg := config.LoadConfig()

	spec, err := config.LoadSource(opts.SpecFile)
	if err != nil {
		return err
	}

	client, dbName, err := connectFromSpec(ctx, cfg, spec, opts.Database)
	if err != nil {
		return err
	}
	defer client.Disconnect(context.Background())

	stateDir := opts.StateDir
	if stateDir == "" {
		stateDir = cfg.StateDir
	}
	store, err := state.NewStore(stateDir)
	if err != nil {
		return err
	}
	defer store.Close()

	incremental, err := resolveIncremental(ctx, store, spec, opts.FullRefresh)
	if err != nil {
		return err
	}

	output := opts.Output
	if output == "" {
		output = spec.Collection + ".jsonl"
	}
	writer, err := sink.NewJSONLWriter(output)
	if err != nil {
		return err
	}
	defer writer.Close()

	collection := client.Database(dbName).Collection(spec.Collection)
	extractor := source.NewCollectionExtractor(collection, incremental)
	pipeline := source.NewPipeline(extractor, writer, incremental, opts.DryRun)

	log.Info().
		Str("database", dbName).
		Str("collection", spec.Collection).
		Str("output", output).
		Msg("extracting collection")

	stats, err := pipeline.Run(ctx)
	if err != nil {
		return err
	}

	if stats.Watermark != nil && !opts.DryRun {
		wm := state.Watermark{
			Collection:  spec.Collection,
			CursorField: incremental.CursorField,
			Value:       stats.Watermark,
		}
		if err := store.Save(ctx, wm); err != nil {
			return err
		}
		log.Info().
			Str("cursor_field", wm.CursorField).
			Interface("watermark", wm.Value).
			Msg("watermark saved")
	}

	fmt.Printf("Extracted %d documents in %d chunks to %s\n", stats.Documents, stats.Chunks, output)
	return nil
}

func runCollections(ctx context.Context, opts *ExtractOptions) error {
	cfg := config.LoadConfig()

	spec, err := config.LoadSource(opts.SpecFile)
	if err != nil {
		return err
	}

	client, dbName, err := connectFromSpec(ctx, cfg, spec, opts.Database)
	if err != nil {
		return err
	}
	defer client.Disconnect(context.Background())

	names, err := client.Database(dbName).ListCollectionNames(ctx, bson.M{})
	if err != nil {
		return fmt.Errorf("listing collections in %s: %w", dbName, err)
	}
	for _, name := range names {
		fmt.Println(name)
	}
	return nil
}

func connectFromSpec(ctx context.Context, cfg *config.Config, spec *models.SourceSpec, dbOverride string) (*mongo.Client, string, error) {
	connString := spec.ConnectionURL
	if connString == "" {
		connString = cfg.MongoConnString
	}
	if connString == "" {
		return nil, "", errors.New("no connection URL: set connection_url in the spec or MONGO_CONNECTION_STRING")
	}

	dbName := dbOverride
	if dbName == "" {
		dbName = spec.Database
	}
	if dbName == "" {
		return nil, "", errors.New("no database: set database in the spec or pass --database")
	}

	client, err := database.ConnectMongo(ctx, connString)
	if err != nil {
		return nil, "", err
	}
	return client, dbName, nil
}

// resolveIncremental turns the declarative incremental spec into the
// extractor's cursor descriptor. The effective last value is the stored
// watermark when one exists for the same cursor field, else the spec's
// initial_value, else nil (full load). A full refresh drops the stored
// watermark first.
func resolveIncremental(ctx context.Context, store *state.Store, spec *models.SourceSpec, fullRefresh bool) (*source.Incremental, error) {
	if spec.Incremental == nil {
		return nil, nil
	}

	policy, err := source.ParsePolicy(spec.Incremental.LastValueFunc)
	if err != nil {
		return nil, err
	}

	if fullRefresh {
		if err := store.Delete(ctx, spec.Collection); err != nil {
			return nil, err
		}
	}

	lastValue := spec.Incremental.InitialValue
	if !fullRefresh {
		wm, err := store.Get(ctx, spec.Collection)
		if err != nil {
			return nil, err
		}
		if wm != nil && wm.CursorField == spec.Incremental.CursorPath {
			lastValue = wm.Value
		}
	}

	return &source.Incremental{
		CursorField: spec.Incremental.CursorPath,
		LastValue:   lastValue,
		Policy:      policy,
	}, nil
}
