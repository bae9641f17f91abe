// Package assets provides the stylesheets and page templates of guides.
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - built-in styles and the guide template
//	    ├── FilesystemLoader  - overrides from a directory on disk
//	    └── AssetResolver     - custom first, embedded on not-found
//
// Override directories mirror the embedded layout:
//
//	{basePath}/
//	├── styles/{name}.css
//	└── templates/{name}.html
//
// Asset names are plain identifiers; the filesystem loader also checks that
// resolved paths, symlinks included, stay under basePath.
package assets
