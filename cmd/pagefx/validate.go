package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vango-dev/pagefx/internal/config"
	"github.com/vango-dev/pagefx/internal/errors"
	"github.com/vango-dev/pagefx/pkg/render"
	"github.com/vango-dev/pagefx/pkg/validate"
	"github.com/vango-dev/pagefx/pkg/vdom"
)

func validateCmd() *cobra.Command {
	var (
		configPath string
		values     = map[string]*string{}
	)

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate client configuration values",
		Long: `Run the form validation rules against the given values and print the
annotated form. Exits non-zero when any field is invalid.

Examples:
  pagefx validate --client-id my-app --redirect-uri http://localhost:8080/callback`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			return runValidate(cmd.OutOrStdout(), cfg, map[string]string{
				validate.FieldClientID:     *values[validate.FieldClientID],
				validate.FieldClientSecret: *values[validate.FieldClientSecret],
				validate.FieldRedirectURI:  *values[validate.FieldRedirectURI],
			})
		},
	}

	values[validate.FieldClientID] = cmd.Flags().String("client-id", "", "OAuth2 client id")
	values[validate.FieldClientSecret] = cmd.Flags().String("client-secret", "", "OAuth2 client secret")
	values[validate.FieldRedirectURI] = cmd.Flags().String("redirect-uri", "", "OAuth2 redirect URI")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to a YAML config file (for messages)")

	return cmd
}

func runValidate(w io.Writer, cfg *config.Config, values map[string]string) error {
	engine := validate.Default(validate.WithMessages(cfg.Messages.Fields))

	form := vdom.Form()
	for _, f := range engine.Fields() {
		form.AppendChild(vdom.Div(vdom.Class("form-group"),
			vdom.Label(vdom.For(f.ID), f.ID),
			vdom.Input(vdom.ID(f.ID), vdom.Name(f.ID), vdom.Value(values[f.ID])),
		))
	}

	res := engine.Check(form)

	out, err := render.NewRenderer(render.RendererConfig{Pretty: true}).RenderToString(form)
	if err != nil {
		return err
	}
	fmt.Fprint(w, out)

	if !res.Valid {
		perr := errors.New("P030")
		for _, fe := range res.Errors {
			fmt.Fprintln(w, errorStyle.Render(fmt.Sprintf("✗ %s: %s", fe.Field, fe.Message)))
			perr.Detail += fmt.Sprintf("\n  %s: %s", fe.Field, fe.Message)
		}
		return perr
	}
	success(w, "%d fields valid", res.Checked)
	return nil
}
