package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"civitaid/internal/common/fsutil"
	"civitaid/pkg/types"
)

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q: must be a positive integer", s)
	}
	return id, nil
}

func newScanCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "scan",
		Short: "List model files without an info sidecar",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service()
			if err != nil {
				return err
			}
			files, err := svc.ScanModels(cmd.Context())
			if err != nil {
				return err
			}
			for _, f := range files {
				fmt.Fprintln(cmd.OutOrStdout(), f)
			}
			return nil
		},
	}
}

func newCreateInfoCmd(a *app) *cobra.Command {
	var req types.CreateInfoRequest
	var all bool
	cmd := &cobra.Command{
		Use:     "create-info [files...]",
		Short:   "Fetch info sidecars and previews from Civitai",
		Example: "  civitaid create-info --all --organize --version-folder\n  civitaid create-info ~/sd/models/Lora/foo.safetensors",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service()
			if err != nil {
				return err
			}
			req.Files = args
			if all {
				files, err := svc.ScanModels(cmd.Context())
				if err != nil {
					return err
				}
				req.Files = append(req.Files, files...)
			}
			if len(req.Files) == 0 {
				return fmt.Errorf("no files given; pass paths or --all")
			}
			unresolved, err := svc.CreateModelsInformation(cmd.Context(), req)
			if err != nil {
				return err
			}
			a.log.Info().Int("files", len(req.Files)).Int("unregistered", len(unresolved)).Msg("create-info done")
			for _, f := range unresolved {
				fmt.Fprintln(cmd.OutOrStdout(), f)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "Process every file the scan reports")
	cmd.Flags().BoolVar(&req.Organize, "organize", false, "Move resolved files into their model type folder")
	cmd.Flags().BoolVar(&req.VersionFolder, "version-folder", false, "With --organize, add a per-version folder")
	cmd.Flags().BoolVar(&req.RegisterShortcut, "shortcut", false, "Register a shortcut for every resolved model")
	return cmd
}

func newFixNamesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "fix-names",
		Short: "Rename info sidecars to their canonical name",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service()
			if err != nil {
				return err
			}
			n, err := svc.FixFilenames(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "renamed %d\n", n)
			return nil
		},
	}
}

func newModelCmd(a *app) *cobra.Command {
	var latest bool
	var versionName string
	cmd := &cobra.Command{
		Use:   "model <id>",
		Short: "Show a model, its latest version or a version id by name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			svc, err := a.service()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			switch {
			case versionName != "":
				vid, err := svc.VersionIDByName(ctx, id, versionName)
				if err != nil {
					return err
				}
				return printJSON(cmd, types.VersionIDResponse{VersionID: vid})
			case latest:
				v, err := svc.LatestVersion(ctx, id)
				if err != nil {
					return err
				}
				return printJSON(cmd, v)
			}
			m, err := svc.Model(ctx, id)
			if err != nil {
				return err
			}
			return printJSON(cmd, m)
		},
	}
	cmd.Flags().BoolVar(&latest, "latest", false, "Print the model's latest version instead")
	cmd.Flags().StringVar(&versionName, "version-name", "", "Print the id of the version with this name")
	return cmd
}

func newVersionCmd(a *app) *cobra.Command {
	var files, primary bool
	cmd := &cobra.Command{
		Use:   "version <id>",
		Short: "Show a model version, its files or its primary file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			svc, err := a.service()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			switch {
			case primary:
				f, err := svc.PrimaryFile(ctx, id)
				if err != nil {
					return err
				}
				return printJSON(cmd, f)
			case files:
				fs, err := svc.Files(ctx, id)
				if err != nil {
					return err
				}
				return printJSON(cmd, fs)
			}
			v, err := svc.Version(ctx, id)
			if err != nil {
				return err
			}
			return printJSON(cmd, v)
		},
	}
	cmd.Flags().BoolVar(&files, "files", false, "Print the files keyed by file id")
	cmd.Flags().BoolVar(&primary, "primary-file", false, "Print the primary file")
	return cmd
}

func newHashCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "hash <file|sha256>",
		Short: "Look up a model version by file or SHA-256",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hash := args[0]
			if fsutil.IsFile(hash) {
				h, err := fsutil.SHA256File(hash)
				if err != nil {
					return err
				}
				a.log.Debug().Str("file", args[0]).Str("sha256", h).Msg("hashed")
				hash = h
			}
			svc, err := a.service()
			if err != nil {
				return err
			}
			v, err := svc.VersionByHash(cmd.Context(), hash)
			if err != nil {
				return err
			}
			return printJSON(cmd, v)
		},
	}
}

func newImagesCmd(a *app) *cobra.Command {
	var modelID, versionID int64
	var username string
	cmd := &cobra.Command{
		Use:   "images [version-id]",
		Short: "List the images of a version, or search by --model",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service()
			if err != nil {
				return err
			}
			var imgs []types.ImageRecord
			switch {
			case len(args) == 1:
				id, err := parseID(args[0])
				if err != nil {
					return err
				}
				if imgs, err = svc.VersionImages(cmd.Context(), id); err != nil {
					return err
				}
			case modelID > 0:
				imgs, err = svc.SearchImages(cmd.Context(), modelID, versionID, username)
				if err != nil {
					a.log.Warn().Err(err).Msg("image search failed")
				}
			default:
				return fmt.Errorf("pass a version id or --model")
			}
			if imgs == nil {
				imgs = []types.ImageRecord{}
			}
			return printJSON(cmd, types.ImagesResponse{Images: imgs})
		},
	}
	cmd.Flags().Int64Var(&modelID, "model", 0, "Search images of this model")
	cmd.Flags().Int64Var(&versionID, "model-version", 0, "With --model, restrict to a version")
	cmd.Flags().StringVar(&username, "username", "", "With --model, restrict to a user")
	return cmd
}

func newTriggerCmd(a *app) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "trigger <version-id>",
		Short: "Print or write the trigger words of a version",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			svc, err := a.service()
			if err != nil {
				return err
			}
			if out != "" {
				return svc.WriteTriggerWords(cmd.Context(), out, id)
			}
			words, err := svc.TriggerWords(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), words)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "Write the words to this file instead")
	return cmd
}

func newLoraMetaCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "lora-meta <version-id> <path>",
		Short: "Write LoRA metadata for a version unless path exists",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			svc, err := a.service()
			if err != nil {
				return err
			}
			return svc.WriteLoraMetadata(cmd.Context(), args[1], id)
		},
	}
}

func newShortcutsCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "shortcuts",
		Short: "Manage registered models",
		RunE: func(cmd *cobra.Command, args []string) error {
			return fmt.Errorf("shortcuts requires a subcommand: list|add|remove|update-all|scan-downloaded")
		},
	}
	list := &cobra.Command{Use: "list", Short: "List shortcuts", Args: cobra.NoArgs, RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := a.service()
		if err != nil {
			return err
		}
		return printJSON(cmd, types.ShortcutsResponse{Shortcuts: svc.Shortcuts()})
	}}
	add := &cobra.Command{Use: "add <model-id>", Short: "Register a model", Args: cobra.ExactArgs(1), RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		svc, err := a.service()
		if err != nil {
			return err
		}
		return svc.AddShortcut(cmd.Context(), id)
	}}
	remove := &cobra.Command{Use: "remove <model-id>", Aliases: []string{"rm"}, Short: "Unregister a model", Args: cobra.ExactArgs(1), RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		svc, err := a.service()
		if err != nil {
			return err
		}
		ok, err := svc.RemoveShortcut(id)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("shortcut %d not registered", id)
		}
		return nil
	}}
	batch := func(use, short string, run func(svc batchRunner, ctx context.Context) (types.ShortcutBatchResponse, error)) *cobra.Command {
		return &cobra.Command{Use: use, Short: short, Args: cobra.NoArgs, RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service()
			if err != nil {
				return err
			}
			res, err := run(svc, cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd, res)
		}}
	}
	updateAll := batch("update-all", "Refresh every shortcut from Civitai", batchRunner.UpdateAllShortcuts)
	scanDownloaded := batch("scan-downloaded", "Register every model with a downloaded version", batchRunner.ScanToShortcut)
	root.AddCommand(list, add, remove, updateAll, scanDownloaded)
	return root
}

// batchRunner is the slice of the service the shortcut batches need.
type batchRunner interface {
	UpdateAllShortcuts(ctx context.Context) (types.ShortcutBatchResponse, error)
	ScanToShortcut(ctx context.Context) (types.ShortcutBatchResponse, error)
}

func newSettingsCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "settings",
		Short: "Show or save the configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printJSON(cmd, a.cfg)
		},
	}
	var from string
	save := &cobra.Command{
		Use:   "save",
		Short: "Write the effective configuration to --config",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.cfg
			if from != "" {
				b, err := os.ReadFile(from)
				if err != nil {
					return err
				}
				if err := json.Unmarshal(b, &cfg); err != nil {
					return fmt.Errorf("decode %s: %w", from, err)
				}
			}
			svc, err := a.service()
			if err != nil {
				return err
			}
			if err := svc.SaveSettings(cfg); err != nil {
				return err
			}
			return nil
		},
	}
	save.Flags().StringVar(&from, "from", "", "JSON file whose fields are merged over the current settings")
	root.AddCommand(save)
	return root
}
