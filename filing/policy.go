package filing

import (
	"context"
	"strings"

	"github.com/fwojciec/cabinet"
	"github.com/fwojciec/cabinet/patternmatcher"
)

// defaults maps each system key to its seeded value so a store that was
// never seeded still yields a working policy.
var defaults = func() map[string]cabinet.Value {
	m := make(map[string]cabinet.Value)
	for _, e := range cabinet.DefaultConfig() {
		m[e.Key] = e.Value
	}
	return m
}()

// policy is the configuration-driven behavior of one walk.
type policy struct {
	recursive  bool
	follow     bool
	extensions map[string]struct{}
	ignore     *patternmatcher.Matcher
}

// allows reports whether name passes the extension allow-list.
// An empty allow-list admits every file.
func (p *policy) allows(name string) bool {
	if len(p.extensions) == 0 {
		return true
	}
	_, ok := p.extensions[extension(name)]
	return ok
}

func extension(name string) string {
	i := strings.LastIndexByte(name, '.')
	if i <= 0 {
		return ""
	}
	return strings.ToLower(name[i:])
}

func (s *Service) boolSetting(ctx context.Context, key string, override *bool) (bool, error) {
	if override != nil {
		return *override, nil
	}
	v, err := s.setting(ctx, key)
	if err != nil {
		return false, err
	}
	b, err := v.AsBool()
	if err != nil {
		return false, settingError(key, err)
	}
	return b, nil
}

func (s *Service) stringsSetting(ctx context.Context, key string) ([]string, error) {
	v, err := s.setting(ctx, key)
	if err != nil {
		return nil, err
	}
	ss, err := v.AsStrings()
	if err != nil {
		return nil, settingError(key, err)
	}
	return ss, nil
}

func (s *Service) maxSize(ctx context.Context) (int64, error) {
	v, err := s.setting(ctx, cabinet.KeyCheckinMaxSize)
	if err != nil {
		return 0, err
	}
	n, err := v.AsInt()
	if err != nil {
		return 0, settingError(cabinet.KeyCheckinMaxSize, err)
	}
	return n, nil
}

func (s *Service) setting(ctx context.Context, key string) (cabinet.Value, error) {
	return s.Config.GetOrDefault(ctx, key, defaults[key])
}

// loadPolicy reads the walk policy from the configuration store. When
// withExtensions is false the extension allow-list is left empty.
func (s *Service) loadPolicy(ctx context.Context, opts cabinet.IndexOptions, withExtensions bool) (*policy, error) {
	recursive, err := s.boolSetting(ctx, cabinet.KeyIndexingRecursive, opts.Recursive)
	if err != nil {
		return nil, err
	}
	follow, err := s.boolSetting(ctx, cabinet.KeyIndexingFollowLinks, opts.FollowSymlinks)
	if err != nil {
		return nil, err
	}

	globs, err := s.stringsSetting(ctx, cabinet.KeyIndexingIgnoreGlobs)
	if err != nil {
		return nil, err
	}
	ignore, err := patternmatcher.New(globs)
	if err != nil {
		return nil, err
	}

	p := &policy{recursive: recursive, follow: follow, ignore: ignore}
	if withExtensions {
		exts, err := s.stringsSetting(ctx, cabinet.KeyIndexExtensions)
		if err != nil {
			return nil, err
		}
		p.extensions = make(map[string]struct{}, len(exts))
		for _, ext := range exts {
			ext = strings.ToLower(strings.TrimSpace(ext))
			if ext == "" {
				continue
			}
			if !strings.HasPrefix(ext, ".") {
				ext = "." + ext
			}
			p.extensions[ext] = struct{}{}
		}
	}
	return p, nil
}

func settingError(key string, err error) error {
	return cabinet.Errorf(cabinet.EINVALID, "config %s: %s", key, cabinet.ErrorMessage(err))
}
