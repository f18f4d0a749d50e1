package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"
	"syscall"

	"go.uber.org/automaxprocs/maxprocs"

	C "github.com/qauzy/proxydump/constant"
	"github.com/qauzy/proxydump/hub"
	"github.com/qauzy/proxydump/hub/executor"
	"github.com/qauzy/proxydump/log"
)

var (
	version            bool
	testConfig         bool
	homeDir            string
	configFile         string
	input              string
	outputPath         string
	externalController string
)

func init() {
	flag.StringVar(&homeDir, "d", os.Getenv("PROXYDUMP_HOME_DIR"), "set configuration directory")
	flag.StringVar(&configFile, "f", os.Getenv("PROXYDUMP_CONFIG_FILE"), "specify configuration file")
	flag.StringVar(&input, "i", "", "override the checked proxy list (path or URL)")
	flag.StringVar(&outputPath, "o", "", "override the output directory")
	flag.StringVar(&externalController, "ext-ctl", os.Getenv("PROXYDUMP_OVERRIDE_EXTERNAL_CONTROLLER"), "override external controller address")
	flag.BoolVar(&version, "v", false, "show current version of proxydump")
	flag.BoolVar(&testConfig, "t", false, "test configuration and exit")
	flag.Parse()
}

func main() {
	_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...any) {}))
	if version {
		fmt.Printf("%s %s %s %s with %s %s\n",
			C.Name, C.Version, runtime.GOOS, runtime.GOARCH, runtime.Version(), C.BuildTime)
		return
	}

	if homeDir != "" {
		if !filepath.IsAbs(homeDir) {
			currentDir, _ := os.Getwd()
			homeDir = filepath.Join(currentDir, homeDir)
		}
		C.SetHomeDir(homeDir)
	}

	if configFile != "" {
		if !filepath.IsAbs(configFile) {
			currentDir, _ := os.Getwd()
			configFile = filepath.Join(currentDir, configFile)
		}
	} else {
		configFile = filepath.Join(C.Path.HomeDir(), C.Path.Config())
	}
	C.SetConfig(configFile)

	if testConfig {
		if _, err := executor.Parse(); err != nil {
			log.Errorln(err.Error())
			fmt.Printf("configuration file %s test failed\n", C.Path.Config())
			os.Exit(1)
		}
		fmt.Printf("configuration file %s test is successful\n", C.Path.Config())
		return
	}

	var options []hub.Option
	if input != "" {
		options = append(options, hub.WithInput(absPath(input)))
	}
	if outputPath != "" {
		options = append(options, hub.WithOutputPath(absPath(outputPath)))
	}
	if externalController != "" {
		options = append(options, hub.WithExternalController(externalController))
	}

	serving, err := hub.Parse(options...)
	if err != nil {
		log.Fatalln("Export error: %s", err.Error())
	}
	if !serving {
		return
	}

	termSign := make(chan os.Signal, 1)
	hupSign := make(chan os.Signal, 1)
	signal.Notify(termSign, syscall.SIGINT, syscall.SIGTERM)
	signal.Notify(hupSign, syscall.SIGHUP)
	for {
		select {
		case <-termSign:
			return
		case <-hupSign:
			if err := hub.Reload(options...); err != nil {
				log.Errorln("Reload error: %s", err.Error())
			}
		}
	}
}

func absPath(p string) string {
	if filepath.IsAbs(p) || strings.HasPrefix(p, "http://") || strings.HasPrefix(p, "https://") {
		return p
	}
	currentDir, _ := os.Getwd()
	return filepath.Join(currentDir, p)
}
