package folio

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/eringen/folio/cards"
	"github.com/eringen/folio/page"
)

// Build exports the site as static files under outDir: every page shell
// hydrated with content, one page per published post, the feed, sitemap and
// robots.txt, the public assets (with large images scaled down), the shared
// components, the content document and the engine scripts.
func (a *App) Build(ctx context.Context, outDir string) (BuildReport, error) {
	var report BuildReport
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return report, err
	}

	store, err := a.Content.Store(ctx)
	if err != nil {
		return report, fmt.Errorf("load content: %w", err)
	}

	names, err := a.pageNames()
	if err != nil {
		return report, err
	}
	if _, err := fs.Stat(a.site, path.Join(pagesDir, notFoundShell)); err == nil {
		names = append(names, notFoundShell)
	}
	for _, name := range names {
		currentPath := a.Config.BasePath + "/" + name
		if name == page.Index {
			currentPath = a.Config.BasePath + "/"
		}
		if err := a.buildPage(ctx, outDir, pageRequest{Name: name, Path: currentPath}); err != nil {
			return report, err
		}
		report.Pages = append(report.Pages, name)
	}
	for _, p := range store.BlogPosts(0) {
		name := cards.PostHref(p.ID)
		if err := a.buildPage(ctx, outDir, pageRequest{Name: name}); err != nil {
			return report, err
		}
		report.Posts++
	}

	var feed, sitemap bytes.Buffer
	if err := a.writeRSS(ctx, &feed); err != nil {
		return report, err
	}
	if err := a.writeSitemap(ctx, &sitemap); err != nil {
		return report, err
	}
	files := map[string][]byte{
		"feed.xml":    feed.Bytes(),
		"sitemap.xml": sitemap.Bytes(),
		"robots.txt":  []byte(a.robots()),
	}
	for name, data := range files {
		if err := writeFile(filepath.Join(outDir, name), data); err != nil {
			return report, err
		}
	}

	for route, assets := range embeddedAssets() {
		raw, err := fs.ReadFile(assets, path.Join("embedded", path.Base(route)))
		if err != nil {
			return report, err
		}
		if err := writeFile(filepath.Join(outDir, filepath.FromSlash(route)), raw); err != nil {
			return report, err
		}
		report.Assets++
	}

	if err := a.copyTree(a.staticDir, filepath.Join(outDir, "public"), &report); err != nil {
		return report, err
	}
	if err := a.copyTree("components", filepath.Join(outDir, "components"), &report); err != nil {
		return report, err
	}
	if raw, err := fs.ReadFile(a.site, a.Config.ContentSource); err == nil {
		if err := writeFile(filepath.Join(outDir, filepath.FromSlash(a.Config.ContentSource)), raw); err != nil {
			return report, err
		}
	}

	a.Logger.Info("site built",
		zap.String("out", outDir),
		zap.Int("pages", len(report.Pages)),
		zap.Int("posts", report.Posts),
		zap.Int("images_optimized", report.ImagesOptimized))
	return report, nil
}

func (a *App) buildPage(ctx context.Context, outDir string, req pageRequest) error {
	doc, err := a.composePage(ctx, req)
	if err != nil {
		return fmt.Errorf("build %s: %w", req.Name, err)
	}
	out, err := doc.HTML()
	if err != nil {
		return fmt.Errorf("build %s: %w", req.Name, err)
	}
	return writeFile(filepath.Join(outDir, req.Name), []byte(out))
}

// copyTree copies dir of the site into dst. A missing dir is skipped.
func (a *App) copyTree(dir, dst string, report *BuildReport) error {
	if _, err := fs.Stat(a.site, dir); err != nil {
		return nil
	}
	return fs.WalkDir(a.site, dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		raw, err := fs.ReadFile(a.site, p)
		if err != nil {
			return err
		}
		if isOptimizable(p) {
			optimized, changed, err := optimizeImage(raw)
			switch {
			case err != nil:
				a.Logger.Warn("optimize image", zap.String("path", p), zap.Error(err))
			case changed:
				raw = optimized
				report.ImagesOptimized++
			}
		}
		return writeFile(target, raw)
	})
}

func writeFile(name string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(name), 0o755); err != nil {
		return err
	}
	return os.WriteFile(name, data, 0o644)
}
