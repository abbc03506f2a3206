/*

Goscf computes Hartree-Fock (and, with a hybrid exchange fraction,
Kohn-Sham style) energies for small molecules over Gaussian basis
sets, with analytic nuclear gradients and geometry optimization.

The basic usage looks like this:

	goscf molecule.xyz

, this will run a restricted SCF solve with the STO-3G basis.

You can change the basis and request a geometry optimization:

	goscf -basis 6-31g -opt molecule.xyz

To see all the options run:

	goscf -h

*/
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/op/go-logging"

	"gonum.org/v1/gonum/mat"

	bolt "go.etcd.io/bbolt"

	"github.com/goscf/goscf/basis"
	"github.com/goscf/goscf/checkpoint"
	"github.com/goscf/goscf/chem"
	"github.com/goscf/goscf/deriv"
	"github.com/goscf/goscf/integral"
	"github.com/goscf/goscf/optimize"
	"github.com/goscf/goscf/scf"
)

// These three variables are set during the compilation.
var githash = ""
var gitbranch = ""
var buildstamp = ""
var version = fmt.Sprintf("branch: %s, revision: %s, build time: %s", gitbranch, githash, buildstamp)

// Logger settings.
var log = logging.MustGetLogger("goscf")
var formatter = logging.MustStringFormatter(`%{message}`)

// command-line options
var (
	// application
	app = kingpin.New("goscf", "Gaussian-basis SCF solver").Version(version)

	// input geometry
	xyzFileName = app.Arg("molecule", "molecular geometry in xyz format (angstrom)").Required().ExistingFile()

	// electronic structure parameters
	basisName = app.Flag("basis", "basis set name ("+fmt.Sprint(basis.Names())+")").Default("sto-3g").String()
	charge    = app.Flag("charge", "total charge (overrides the xyz comment line)").Default("0").Int()
	mult      = app.Flag("mult", "spin multiplicity, 0 keeps the xyz comment value").Default("0").Int()
	method    = app.Flag("method", "SCF method "+
		"(rhf: restricted closed-shell, "+
		"uhf: unrestricted"+
		")").Default("rhf").Enum("rhf", "uhf")
	exchange = app.Flag("exchange", "fraction of exact exchange (1 for Hartree-Fock)").Default("1").Float64()

	// convergence parameters
	eTol     = app.Flag("etol", "energy convergence tolerance (hartree)").Default("1e-8").Float64()
	dTol     = app.Flag("dtol", "density error convergence tolerance").Default("1e-6").Float64()
	maxIter  = app.Flag("maxiter", "maximum number of SCF iterations").Default("100").Int()
	diisCap  = app.Flag("diis", "DIIS history size").Default("8").Int()
	diisFrom = app.Flag("diis-start", "first iteration to apply DIIS extrapolation").Default("2").Int()
	linDep   = app.Flag("lindep", "overlap eigenvalue threshold for dropping near-dependent functions").Default("1e-8").Float64()

	// derivatives and geometry optimization
	gradient  = app.Flag("grad", "compute the analytic nuclear gradient").Bool()
	opt       = app.Flag("opt", "optimize the geometry").Bool()
	optMethod = app.Flag("opt-method", "geometry optimization method "+
		"(lbfgs: limited-memory BFGS, "+
		"gd: gradient descent"+
		")").Default("lbfgs").Enum("lbfgs", "gd")
	optTol  = app.Flag("opt-tol", "gradient tolerance for geometry convergence").Default("1e-4").Float64()
	optIter = app.Flag("opt-iter", "maximum geometry optimization iterations").Default("100").Int()

	// checkpointing
	checkpointF        = app.Flag("checkpoint", "save SCF restart data to a bolt database file").String()
	checkpointInterval = app.Flag("checkpoint-interval", "minimum seconds between mid-solve checkpoint saves").Default("30").Float64()

	// input/output
	outLogF  = app.Flag("log", "write log to a file").String()
	logLevel = app.Flag("loglevel", "set loglevel "+
		"('critical', 'error', 'warning', 'notice', 'info', 'debug')").
		Default("notice").
		Enum("critical", "error", "warning", "notice", "info", "debug")
	jsonF = app.Flag("json", "write json output to a file").String()
	plotF = app.Flag("plot", "write a convergence plot (png) to a file").String()
)

// readMolecule parses the xyz file and applies command-line overrides.
func readMolecule() (*chem.Molecule, error) {
	f, err := os.Open(*xyzFileName)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	mol, err := chem.ParseXYZ(f)
	if err != nil {
		return nil, err
	}
	if *charge != 0 {
		mol.Charge = *charge
	}
	if *mult != 0 {
		mol.Multiplicity = *mult
	}
	if _, err := mol.NElectrons(); err != nil {
		return nil, err
	}
	return mol, nil
}

// solverConfig assembles the scf.Config from the flags; the returned
// closer releases the checkpoint database, if any.
func solverConfig() (scf.Config, func(), error) {
	cfg := scf.NewConfig()
	cfg.EnergyTolerance = *eTol
	cfg.DensityTolerance = *dTol
	cfg.MaxIterations = *maxIter
	cfg.DIISCapacity = *diisCap
	cfg.DIISStart = *diisFrom
	cfg.ExactExchange = *exchange
	cfg.LinDepThreshold = *linDep

	closer := func() {}
	if *checkpointF != "" {
		db, err := bolt.Open(*checkpointF, 0644, nil)
		if err != nil {
			return cfg, closer, fmt.Errorf("opening checkpoint database: %v", err)
		}
		cfg.Checkpoint = checkpoint.NewIO(db, []byte(*xyzFileName), *checkpointInterval)
		closer = func() { db.Close() }
	}
	return cfg, closer, nil
}

// run performs the requested computation and fills the summary.
func run(summary *RunSummary) error {
	mol, err := readMolecule()
	if err != nil {
		return err
	}
	cfg, closeCheckpoint, err := solverConfig()
	if err != nil {
		return err
	}
	defer closeCheckpoint()

	if *opt {
		if *method != "rhf" {
			return fmt.Errorf("geometry optimization requires -method rhf")
		}
		return runOptimization(mol, cfg, summary)
	}

	b, err := basis.Build(mol, *basisName)
	if err != nil {
		return err
	}
	log.Infof("basis %s: %d functions", *basisName, b.Size())
	set := integral.Compute(b)

	if *method == "rhf" {
		if d := restoredDensity(cfg.Checkpoint, set.N); d != nil {
			log.Notice("resuming from checkpoint density")
			cfg.Guess = scf.GuessDensity
			cfg.InitialDensity = d
		}
	}

	start := time.Now()
	var res *scf.Result
	switch *method {
	case "uhf":
		res, err = scf.SolveUHF(mol, set, cfg)
	default:
		res, err = scf.Solve(mol, set, cfg)
	}
	if err != nil {
		return err
	}
	summary.fillSCF(res, time.Since(start).Seconds())

	if !res.Converged {
		log.Warningf("SCF terminated: %v", res.Status)
		return nil
	}
	log.Noticef("total energy: %.10f hartree", res.Energy)

	if *gradient {
		if *method != "rhf" {
			return fmt.Errorf("analytic gradients require -method rhf")
		}
		grad, err := deriv.Gradient(mol, b, res)
		if err != nil {
			return err
		}
		summary.Gradient = grad
		for i, a := range mol.Atoms {
			log.Noticef("gradient atom %d (Z=%d): [% .8f % .8f % .8f]",
				i, a.Z, grad[3*i], grad[3*i+1], grad[3*i+2])
		}
	}

	if *plotF != "" {
		if err := plotConvergence(res.Trajectory, *plotF); err != nil {
			log.Errorf("writing convergence plot: %v", err)
		}
	}
	return nil
}

// restoredDensity loads a stored density from the checkpoint, nil when
// none is usable for the current basis dimension.
func restoredDensity(cp *checkpoint.IO, n int) *mat.SymDense {
	if cp == nil {
		return nil
	}
	data, err := cp.GetData()
	if err != nil {
		log.Errorf("reading checkpoint: %v", err)
		return nil
	}
	if data == nil || data.N != n || len(data.Density) != n*n {
		return nil
	}
	d := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			d.SetSym(i, j, data.Density[i*n+j])
		}
	}
	return d
}

// runOptimization minimizes the energy over the nuclear coordinates.
func runOptimization(mol *chem.Molecule, cfg scf.Config, summary *RunSummary) error {
	settings := optimize.NewSettings()
	settings.GradientTolerance = *optTol
	settings.MaxIterations = *optIter
	if *optMethod == "gd" {
		settings.Method = optimize.MethodGradientDescent
	}

	g := optimize.NewGeometry(mol, *basisName, cfg)
	start := time.Now()
	res, err := optimize.Minimize(g, mol.Coordinates(), settings)
	if err != nil {
		return err
	}
	if scfRes := g.Last(); scfRes != nil {
		summary.fillSCF(scfRes, time.Since(start).Seconds())
	}
	summary.Optimization = &OptimizationSummary{
		Energy:      res.Energy,
		Coordinates: res.X,
		Gradient:    res.Gradient,
		Iterations:  res.Iterations,
		Converged:   res.Converged,
	}
	if !res.Converged {
		log.Warning("geometry optimization did not converge")
		return nil
	}

	log.Noticef("optimized energy: %.10f hartree", res.Energy)
	final := mol.WithCoordinates(res.X)
	for i, a := range final.Atoms {
		log.Noticef("atom %d (Z=%d): [% .8f % .8f % .8f] bohr",
			i, a.Z, a.Position[0], a.Position[1], a.Position[2])
	}
	return nil
}

func main() {
	kingpin.MustParse(app.Parse(os.Args[1:]))

	// logging
	logging.SetFormatter(formatter)

	var backend *logging.LogBackend
	if *outLogF != "" {
		f, err := os.OpenFile(*outLogF, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0666)
		if err != nil {
			log.Fatal("Error creating log file:", err)
		}
		defer f.Close()
		backend = logging.NewLogBackend(f, "", 0)
	} else {
		backend = logging.NewLogBackend(os.Stderr, "", 0)
	}
	logging.SetBackend(backend)

	level, err := logging.LogLevel(*logLevel)
	if err != nil {
		log.Fatal(err)
	}
	logging.SetLevel(level, "goscf")
	logging.SetLevel(level, "scf")
	logging.SetLevel(level, "optimize")
	logging.SetLevel(level, "checkpoint")

	// print revision
	log.Info(version)

	// print commandline
	log.Info("Command line:", os.Args)

	start := time.Now()
	summary := &RunSummary{
		Version:     version,
		CommandLine: os.Args,
		Basis:       *basisName,
		Method:      *method,
	}
	if err := run(summary); err != nil {
		log.Fatal(err)
	}
	summary.TotalTime = time.Since(start).Seconds()

	// output summary in json format
	if *jsonF != "" {
		j, err := json.Marshal(summary)
		if err != nil {
			log.Error(err)
		} else {
			log.Debug(string(j))
			f, err := os.Create(*jsonF)
			if err != nil {
				log.Error("Error creating json output file:", err)
			} else {
				f.Write(j)
				f.Close()
			}
		}
	}
}
