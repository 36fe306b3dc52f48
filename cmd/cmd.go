// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to configuration file",
		Value:   "config.toml",
	}
}

// setupCommand handles first-run setup operations.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:   "config",
				Usage:  "Write an example config.toml to the current directory",
				Flags:  []cli.Flag{configFlag()},
				Action: r.SetupConfig,
			},
			{
				Name:   "database",
				Usage:  "Initialize database and run migrations",
				Flags:  []cli.Flag{configFlag()},
				Action: r.SetupDatabase,
			},
		},
	}
}

// authCommand handles authentication operations
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Manage YouTube authentication",
		Commands: []*cli.Command{
			{
				Name:   "login",
				Usage:  "Run the OAuth2 consent flow and save a token",
				Flags:  []cli.Flag{configFlag()},
				Action: r.AuthLogin,
			},
			{
				Name:   "status",
				Usage:  "Check whether a saved token exists and is valid",
				Flags:  []cli.Flag{configFlag()},
				Action: r.AuthStatus,
			},
		},
	}
}

// libraryCommand handles local library scans.
func libraryCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "library",
		Aliases: []string{"lib"},
		Usage:   "Local video library scans",
		Commands: []*cli.Command{
			{
				Name:  "hours",
				Usage: "Aggregate video durations per course folder",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "dir"},
				},
				Flags: []cli.Flag{
					configFlag(),
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Directory for the CSV and log reports (default: scanned directory)",
					},
					&cli.BoolFlag{
						Name:  "no-cache",
						Usage: "Probe every file even when a cached duration exists",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output totals as JSON",
					},
				},
				Action: r.LibraryHours,
			},
			{
				Name:    "duplicates",
				Aliases: []string{"dupes"},
				Usage:   "Find files with identical contents",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "dir"},
				},
				Flags: []cli.Flag{
					configFlag(),
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Path for the duplicates report (default: stdout only)",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output duplicate groups as JSON",
					},
				},
				Action: r.LibraryDuplicates,
			},
		},
	}
}

// renameCommand handles manifest-driven batch renames.
func renameCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "rename",
		Usage: "Batch rename videos from a manifest",
		Commands: []*cli.Command{
			{
				Name:  "plan",
				Usage: "Show the renames a manifest would perform, without touching files",
				Flags: []cli.Flag{
					configFlag(),
					&cli.StringFlag{
						Name:     "dir",
						Aliases:  []string{"d"},
						Usage:    "Directory containing the files to rename",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "manifest",
						Aliases:  []string{"m"},
						Usage:    "YAML or CSV manifest of from/to pairs",
						Required: true,
					},
				},
				Action: r.RenamePlan,
			},
			{
				Name:  "apply",
				Usage: "Perform the renames from a manifest",
				Flags: []cli.Flag{
					configFlag(),
					&cli.StringFlag{
						Name:     "dir",
						Aliases:  []string{"d"},
						Usage:    "Directory containing the files to rename",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "manifest",
						Aliases:  []string{"m"},
						Usage:    "YAML or CSV manifest of from/to pairs",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "log",
						Usage: "Append completed renames to this log file",
						Value: "rename.log",
					},
				},
				Action: r.RenameApply,
			},
		},
	}
}

// convertCommand handles batch format conversion.
func convertCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "convert",
		Usage: "Batch format conversion",
		Commands: []*cli.Command{
			{
				Name:  "run",
				Usage: "Convert a video tree to MP4, mirroring the folder structure",
				Flags: []cli.Flag{
					configFlag(),
					&cli.StringFlag{
						Name:     "input",
						Aliases:  []string{"i"},
						Usage:    "Root directory of videos to convert",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "output",
						Aliases:  []string{"o"},
						Usage:    "Root directory for converted files",
						Required: true,
					},
					&cli.BoolFlag{
						Name:  "cuda",
						Usage: "Use NVENC hardware encoding",
					},
				},
				Action: r.ConvertRun,
			},
			{
				Name:  "stitch",
				Usage: "Join a folder's videos into one file without re-encoding",
				Flags: []cli.Flag{
					configFlag(),
					&cli.StringFlag{
						Name:     "input",
						Aliases:  []string{"i"},
						Usage:    "Folder of videos to join, in natural order",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "output",
						Aliases:  []string{"o"},
						Usage:    "Path of the combined video",
						Required: true,
					},
					&cli.BoolFlag{
						Name:    "recursive",
						Aliases: []string{"r"},
						Usage:   "Include videos from subfolders",
					},
				},
				Action: r.ConvertStitch,
			},
		},
	}
}

// bgmCommand handles background music mixing.
func bgmCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "bgm",
		Usage: "Background music mixing",
		Commands: []*cli.Command{
			{
				Name:  "mix",
				Usage: "Loop a background track under every video in a folder",
				Flags: []cli.Flag{
					configFlag(),
					&cli.StringFlag{
						Name:     "dir",
						Aliases:  []string{"d"},
						Usage:    "Directory of videos to mix",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "music",
						Aliases:  []string{"m"},
						Usage:    "Audio file to loop under each video",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "output",
						Aliases:  []string{"o"},
						Usage:    "Directory for mixed files",
						Required: true,
					},
					&cli.Float64Flag{
						Name:  "volume",
						Usage: "Background track volume (0.0-1.0)",
						Value: 0.1,
					},
				},
				Action: r.BGMMix,
			},
		},
	}
}

// uploadCommand handles bulk course uploads.
func uploadCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "upload",
		Usage: "Bulk upload course videos to a playlist",
		Commands: []*cli.Command{
			{
				Name:  "run",
				Usage: "Validate a course folder and upload it, resuming any prior run",
				Flags: []cli.Flag{
					configFlag(),
					&cli.StringFlag{
						Name:     "dir",
						Aliases:  []string{"d"},
						Usage:    "Course folder to upload",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "playlist-id",
						Aliases:  []string{"p"},
						Usage:    "Playlist to insert uploads into",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "privacy",
						Usage: "Privacy status for uploaded videos",
					},
				},
				Action: r.UploadRun,
			},
			{
				Name:  "verify",
				Usage: "Compare a course folder against a playlist's contents",
				Flags: []cli.Flag{
					configFlag(),
					&cli.StringFlag{
						Name:     "dir",
						Aliases:  []string{"d"},
						Usage:    "Course folder to verify",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "playlist-id",
						Aliases:  []string{"p"},
						Usage:    "Playlist to verify against",
						Required: true,
					},
				},
				Action: r.UploadVerify,
			},
			{
				Name:  "jobs",
				Usage: "List persisted upload jobs",
				Flags: []cli.Flag{
					configFlag(),
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output jobs as JSON",
					},
				},
				Action: r.UploadJobs,
			},
		},
	}
}

// playlistCommand handles channel playlist operations.
func playlistCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "playlist",
		Aliases: []string{"pl"},
		Usage:   "Channel playlist operations",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List the channel's playlists",
				Flags: []cli.Flag{
					configFlag(),
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.PlaylistList,
			},
			{
				Name:  "videos",
				Usage: "List the videos in a playlist",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags: []cli.Flag{
					configFlag(),
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.PlaylistVideos,
			},
			{
				Name:  "edit",
				Usage: "Update a playlist's title, description, or privacy",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags: []cli.Flag{
					configFlag(),
					&cli.StringFlag{
						Name:  "title",
						Usage: "New playlist title",
					},
					&cli.StringFlag{
						Name:  "description",
						Usage: "New playlist description",
					},
					&cli.StringFlag{
						Name:  "privacy",
						Usage: "New privacy status (public, unlisted, private)",
					},
				},
				Action: r.PlaylistEdit,
			},
			{
				Name:  "rename",
				Usage: "Normalize video titles in a playlist to \"Chapter N - Topic\"",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags: []cli.Flag{
					configFlag(),
					&cli.BoolFlag{
						Name:  "yes",
						Usage: "Apply the renames instead of only printing them",
					},
				},
				Action: r.PlaylistRename,
			},
			{
				Name:  "delete",
				Usage: "Delete a playlist (its videos stay on the channel)",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags: []cli.Flag{
					configFlag(),
					&cli.BoolFlag{
						Name:  "yes",
						Usage: "Skip the confirmation prompt",
					},
				},
				Action: r.PlaylistDelete,
			},
			{
				Name:  "purge",
				Usage: "Remove every entry from a playlist",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags: []cli.Flag{
					configFlag(),
					&cli.BoolFlag{
						Name:  "delete-videos",
						Usage: "Also delete the underlying videos from the channel",
					},
					&cli.BoolFlag{
						Name:  "delete-playlist",
						Usage: "Delete the playlist itself after emptying it",
					},
					&cli.BoolFlag{
						Name:  "yes",
						Usage: "Skip the confirmation prompt",
					},
				},
				Action: r.PlaylistPurge,
			},
		},
	}
}

// reportCommand handles playlist report generation.
func reportCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "report",
		Usage: "Generate playlist reports",
		Commands: []*cli.Command{
			{
				Name:  "excel",
				Usage: "Write an Excel workbook of a playlist's videos in chapter order",
				Flags: []cli.Flag{
					configFlag(),
					&cli.StringFlag{
						Name:    "playlist-id",
						Aliases: []string{"p"},
						Usage:   "Playlist to report on",
					},
					&cli.StringFlag{
						Name:  "playlist-file",
						Usage: "File of playlist IDs, one per line, for a batch of workbooks",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output workbook path, or directory in batch mode",
						Value:   ".",
					},
				},
				Action: r.ReportExcel,
			},
			{
				Name:  "csv",
				Usage: "Write a translation-task CSV for a playlist",
				Flags: []cli.Flag{
					configFlag(),
					&cli.StringFlag{
						Name:     "playlist-id",
						Aliases:  []string{"p"},
						Usage:    "Playlist to report on",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "project-id",
						Usage:    "Project identifier for every row",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "target-language",
						Usage:    "Translation target language",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "assignee",
						Usage: "Assignee for every row",
					},
					&cli.StringFlag{
						Name:  "gender",
						Usage: "Speaker gender column value",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output CSV path",
						Value:   "translation.csv",
					},
				},
				Action: r.ReportCSV,
			},
		},
	}
}

// dashboardCommand launches the interactive duration dashboard.
func dashboardCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "dashboard",
		Aliases: []string{"dash"},
		Usage:   "Interactive TUI over an hours report CSV",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "report"},
		},
		Flags: []cli.Flag{
			configFlag(),
			&cli.StringFlag{
				Name:  "title",
				Usage: "Dashboard title",
				Value: "Course Hours",
			},
		},
		Action: r.Dashboard,
	}
}
