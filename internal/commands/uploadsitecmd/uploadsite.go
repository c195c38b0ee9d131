// Package uploadsitecmd implements the upload-site command.
package uploadsitecmd

import (
	"context"
	"io"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/input-output-hk/catalyst-forge-libs/infra/internal/cli"
	"github.com/input-output-hk/catalyst-forge-libs/infra/website"
)

const (
	flagReconfigure = "reconfigure"
	flagNoProgress  = "no-progress"
)

// NewCmd returns the upload-site command.
func NewCmd(app *cli.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "upload-site <path-to-folder> <bucket-suffix>",
		Short: "Publish a folder as an S3 static website",
		Long: `Upload a local folder to the bucket devops-exam-<bucket-suffix> and serve
it as a public static website.

A new bucket is configured for website hosting with index.html as both the
index and error document, and made publicly readable. A bucket you already
own is emptied before the upload.`,
		Args: cli.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), app, args[0], args[1])
		},
	}

	app.Setup(cmd)
	cmd.Flags().Bool(flagReconfigure, false, "also apply website hosting and public access to an existing bucket")
	cmd.Flags().Bool(flagNoProgress, false, "do not draw a progress bar")

	return cmd
}

func run(ctx context.Context, app *cli.App, dir, suffix string) error {
	bucket, err := website.BucketName(suffix)
	if err != nil {
		return err
	}

	awsCfg, err := app.AWSConfig(ctx)
	if err != nil {
		return err
	}

	progress := &printer{ux: app.UX}
	if !app.Viper.GetBool(flagNoProgress) {
		progress.barOut = app.Err
	}
	defer progress.finish()

	deployer := website.New(app.Storage(awsCfg),
		website.WithLogger(app.Log.Named("website")),
		website.WithReconfigure(app.Viper.GetBool(flagReconfigure)),
		website.WithProgress(progress),
	)

	result, err := deployer.Deploy(ctx, dir, bucket)
	if err != nil {
		return err
	}
	progress.finish()

	app.UX.PrintToUser("\nWebsite URL:\n%s", result.URL)
	return nil
}

// printer reports deployment events to the user, optionally with a progress bar.
type printer struct {
	ux     *cli.UserLog
	barOut io.Writer
	bar    *progressbar.ProgressBar
}

func (p *printer) BucketCreated(bucket string) {
	p.ux.PrintToUser("Bucket created: %s", bucket)
}

func (p *printer) BucketReused(bucket string) {
	p.ux.PrintToUser("Bucket already exists: %s", bucket)
}

func (p *printer) BucketEmptied(bucket string, deleted int) {
	p.ux.PrintToUser("Emptied %s: %d object(s) deleted", bucket, deleted)
}

func (p *printer) UploadStarted(total int) {
	if p.barOut != nil && total > 0 {
		p.bar = cli.NewProgressBar(p.barOut, total, "uploading")
	}
}

func (p *printer) FileUploaded(key string) {
	if p.bar != nil {
		_ = p.bar.Clear()
	}
	p.ux.PrintToUser("Uploaded: %s", key)
	if p.bar != nil {
		_ = p.bar.Add(1)
	}
}

func (p *printer) finish() {
	if p.bar != nil {
		_ = p.bar.Finish()
		p.bar = nil
	}
}
