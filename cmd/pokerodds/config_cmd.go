package main

// ConfigCmd groups configuration file utilities.
type ConfigCmd struct {
	Init ConfigInitCmd `cmd:"" help:"Write the current settings to the config file"`
	Show ConfigShowCmd `cmd:"" help:"Print the effective configuration as HCL"`
}

// ConfigInitCmd writes the effective configuration to --config.
type ConfigInitCmd struct {
	Force bool `short:"f" help:"Overwrite an existing file"`
}

func (c *ConfigInitCmd) Run(e *env) error {
	if err := e.cfg.Write(e.cfgPath, c.Force); err != nil {
		return err
	}
	e.logger.Info("Wrote configuration", "path", e.cfgPath)
	return nil
}

// ConfigShowCmd prints the configuration after defaults are applied.
type ConfigShowCmd struct{}

func (c *ConfigShowCmd) Run(e *env) error {
	_, err := e.out.Write(e.cfg.Encode())
	return err
}
