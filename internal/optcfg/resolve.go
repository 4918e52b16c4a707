package optcfg

import (
	"fmt"

	"gopkg.in/ini.v1"

	"modelopt/internal/faults"
)

// Resolve layers the named section of an INI file onto args. Values already
// present on args win over file values; keys the driver's accumulation policy
// marks as accumulating append to a sequence instead. When section is empty
// it defaults to driverName. Resolve is a no-op without a config path.
func Resolve(args *OptionSet, driverName, section, configPath string) error {
	if configPath == "" {
		return nil
	}
	sec, err := loadSection(configPath, sectionName(section, driverName))
	if err != nil {
		return err
	}
	for _, key := range sec.Keys() {
		name := key.Name()
		if Accumulates(driverName, name) {
			args.Append(name, key.Value())
			continue
		}
		if args.Has(name) {
			continue
		}
		args.Set(name, key.Value())
	}
	return nil
}

// ResolveOverwrite copies every key of the named section onto args,
// replacing values that are already present. It is a no-op without a config
// path but fails when the file or the section cannot be read.
func ResolveOverwrite(args *OptionSet, section, configPath string) error {
	if configPath == "" {
		return nil
	}
	sec, err := loadSection(configPath, section)
	if err != nil {
		return err
	}
	for _, key := range sec.Keys() {
		args.Set(key.Name(), key.Value())
	}
	return nil
}

// Sections returns the named sections present in an INI file, in file order.
func Sections(configPath string) ([]string, error) {
	file, err := load(configPath)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, sec := range file.Sections() {
		if sec.Name() == ini.DefaultSection {
			continue
		}
		names = append(names, sec.Name())
	}
	return names, nil
}

func sectionName(section, driverName string) string {
	if section != "" {
		return section
	}
	return driverName
}

func load(configPath string) (*ini.File, error) {
	file, err := ini.LoadSources(ini.LoadOptions{}, configPath)
	if err != nil {
		return nil, faults.Wrap(faults.ErrConfigFileNotFound, fmt.Sprintf("read %s", configPath), err)
	}
	return file, nil
}

func loadSection(configPath, section string) (*ini.Section, error) {
	file, err := load(configPath)
	if err != nil {
		return nil, err
	}
	sec, err := file.GetSection(section)
	if err != nil {
		return nil, faults.Wrap(faults.ErrConfigSectionMissing, fmt.Sprintf("section [%s] in %s", section, configPath), nil)
	}
	return sec, nil
}
