// Package siteconfig loads the site configuration file and the repository
// records it references into a models.Index.
//
// A site file looks like:
//
//	title: Family Archive
//	description: Letters and photos, **scanned**.
//	keywords: [letters, photos]
//	language: en-US
//	url: auto
//	repositories:
//	  - repos/papers.yml
//	  - name: Photos
//	    slug: photos
//	    url: https://example.com/photos/
//
// Entries under repositories are either inline records or paths, relative
// to the site file, of YAML files holding one record each.
//
// "url: auto" is replaced with https://$GITHUB_USERNAME.github.io/$GITHUB_REPOSITORY,
// or "/" when either variable is unset.
package siteconfig
