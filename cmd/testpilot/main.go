package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"

	"testpilot/internal/agent"
	"testpilot/internal/artifact"
	"testpilot/internal/build"
	"testpilot/internal/config"
	"testpilot/internal/gitdiff"
	"testpilot/internal/llmclient"
	"testpilot/internal/promote"
	"testpilot/internal/safeio"
	"testpilot/internal/synth"
)

func main() {
	repo := flag.String("repo", ".", "path to the repository under analysis")
	flag.Parse()

	cfg, err := config.Load(*repo)
	if err != nil {
		log.Fatal(err)
	}
	if cfg.APIKey == "" {
		log.Fatal("GEMINI_API_KEY is not set")
	}

	fs, err := safeio.NewSafeFS(cfg.RepoDir)
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	llm, err := llmclient.NewGeminiClient(ctx, cfg.APIKey, cfg.Model)
	if err != nil {
		log.Fatal(err)
	}

	store := &artifact.Store{FS: fs, RunID: cfg.RunID}
	if cfg.Artifact.Enabled {
		s3, err := artifact.NewS3Store(artifact.S3Config{
			Endpoint:  cfg.Artifact.Endpoint,
			Region:    cfg.Artifact.Region,
			AccessKey: cfg.Artifact.AccessKey,
			SecretKey: cfg.Artifact.SecretKey,
			Bucket:    cfg.Artifact.Bucket,
			UseSSL:    cfg.Artifact.UseSSL,
		})
		if err != nil {
			log.Printf("warning: artifact upload disabled: %v", err)
		} else {
			store.S3 = s3
		}
	}

	a := &agent.Agent{
		Config: cfg,
		FS:     fs,
		Changes: &gitdiff.Extractor{
			Dir:        cfg.RepoDir,
			SourceRoot: cfg.SourceRoot,
			Ext:        cfg.SourceExt,
		},
		Synth:  &synth.Synthesizer{LLM: llm, FS: fs},
		Runner: &build.MavenRunner{Dir: cfg.RepoDir},
		Promoter: &promote.Promoter{
			Dir:        cfg.RepoDir,
			HeadRef:    cfg.HeadRef,
			RefName:    cfg.RefName,
			BaseBranch: cfg.BaseBranch,
			TestRoot:   cfg.TestRoot,
			Artifacts:  []string{agent.ManifestFile, agent.PlanFile},
		},
		Store: store,
	}

	if err := a.Execute(ctx); err != nil {
		if errors.Is(err, agent.ErrExhausted) {
			log.Printf("healing failed; diagnostics published")
			os.Exit(1)
		}
		log.Fatal(err)
	}
}
