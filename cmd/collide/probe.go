package main

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/arcade-physics/internal/collision"
	"github.com/vovakirdan/arcade-physics/internal/core"
	"github.com/vovakirdan/arcade-physics/internal/scenario"
)

var (
	flagProbeA       string
	flagProbeB       string
	flagProbeResolve bool
	flagProbeRay     string
	flagProbeRayMax  float64
)

var probeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Collide two shapes and print the contact",
	Long: `Build two bodies from inline YAML, run the narrow phase on them and
print the contact from A's perspective.

Bodies use the scenario body format. --resolve evaluates the pair and
prints where the bodies end up. --ray casts "x,y,dx,dy" against both
shapes.

Examples:
  collide probe --a '{id: a, type: active, pos: [0, 0], shape: {kind: box, width: 10, height: 10}}' \
                --b '{id: b, type: fixed, pos: [7, 0], shape: {kind: box, width: 10, height: 10}}' --resolve
  collide probe --a '{id: a, pos: [0, 0], shape: {kind: circle, radius: 5}}' \
                --b '{id: b, pos: [0, 20], shape: {kind: edge, begin: [-10, 0], end: [10, 0]}}' --ray 0,-20,0,1`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if flagProbeA == "" || flagProbeB == "" {
			return errors.New("both --a and --b are required")
		}
		return probe(cmd.OutOrStdout(), probeOptions{
			a:           flagProbeA,
			b:           flagProbeB,
			resolve:     flagProbeResolve,
			ray:         flagProbeRay,
			rayMax:      flagProbeRayMax,
			defaultMass: settings.Body.DefaultMass,
		})
	},
}

func init() {
	probeCmd.Flags().StringVar(&flagProbeA, "a", "", "First body as YAML")
	probeCmd.Flags().StringVar(&flagProbeB, "b", "", "Second body as YAML")
	probeCmd.Flags().BoolVar(&flagProbeResolve, "resolve", false, "Resolve the contact and print the result")
	probeCmd.Flags().StringVar(&flagProbeRay, "ray", "", "Ray to cast as x,y,dx,dy")
	probeCmd.Flags().Float64Var(&flagProbeRayMax, "ray-max", 0, "Maximum ray distance (0 = unlimited)")
}

type probeOptions struct {
	a, b        string
	resolve     bool
	ray         string
	rayMax      float64
	defaultMass float64
}

func probe(out io.Writer, opts probeOptions) error {
	if opts.defaultMass <= 0 {
		opts.defaultMass = collision.DefaultMass
	}
	a, err := buildProbeArea(opts.a, opts.defaultMass)
	if err != nil {
		return fmt.Errorf("--a: %w", err)
	}
	b, err := buildProbeArea(opts.b, opts.defaultMass)
	if err != nil {
		return fmt.Errorf("--b: %w", err)
	}

	if opts.ray != "" {
		ray, err := parseRay(opts.ray)
		if err != nil {
			return err
		}
		rayMax := opts.rayMax
		if rayMax <= 0 {
			rayMax = math.Inf(1)
		}
		for _, area := range []collision.Area{a, b} {
			if hit, ok := area.RayCast(ray, rayMax); ok {
				fmt.Fprintf(out, "ray hits %s at (%.4f, %.4f)\n", area.Body().ID, hit[0], hit[1])
			} else {
				fmt.Fprintf(out, "ray misses %s\n", area.Body().ID)
			}
		}
	}

	contact, err := a.Collide(b)
	if err != nil {
		return err
	}
	if contact == nil {
		fmt.Fprintln(out, "no contact")
		return nil
	}

	fmt.Fprintf(out, "contact %s\n", contact)
	fmt.Fprintf(out, "  depth  %.4f\n", contact.Depth())
	fmt.Fprintf(out, "  normal (%.4f, %.4f)\n", contact.Normal[0], contact.Normal[1])
	fmt.Fprintf(out, "  point  (%.4f, %.4f)\n", contact.Point[0], contact.Point[1])

	if !opts.resolve {
		return nil
	}
	pair, err := collision.NewPair(contact)
	if err != nil {
		return err
	}
	pair.Evaluate()
	for _, body := range []*collision.Body{pair.Left, pair.Right} {
		fmt.Fprintf(out, "resolved %s (%s): pos (%.4f, %.4f) vel (%.4f, %.4f)\n",
			body.ID, body.CollisionType, body.Pos[0], body.Pos[1], body.Vel[0], body.Vel[1])
	}
	return nil
}

func buildProbeArea(src string, defaultMass float64) (collision.Area, error) {
	spec, err := scenario.ParseBody([]byte(src))
	if err != nil {
		return nil, err
	}
	_, area, err := spec.Build(defaultMass)
	return area, err
}

// parseRay parses "x,y,dx,dy".
func parseRay(s string) (core.Ray, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return core.Ray{}, fmt.Errorf("--ray wants x,y,dx,dy, got %q", s)
	}
	var v [4]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return core.Ray{}, fmt.Errorf("--ray: %w", err)
		}
		v[i] = f
	}
	dir := mgl64.Vec2{v[2], v[3]}
	if core.IsZero(dir) {
		return core.Ray{}, errors.New("--ray direction must not be zero")
	}
	return core.NewRay(mgl64.Vec2{v[0], v[1]}, dir), nil
}
