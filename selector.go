package nokogiri

import "github.com/andybalholm/cascadia"

// selectorSet names one or more CSS selectors tried in order; selectAttr
// returns the value from the first selector whose element carries a
// non-empty value for the requested attribute. A matching element whose
// value is empty or missing does not end the walk. This mirrors the table
// in spec §4.1.
type selectorSet []cascadia.Sel

func sel(css string) cascadia.Sel {
	s, err := cascadia.Parse(css)
	if err != nil {
		panic("nokogiri: bad selector " + css + ": " + err.Error())
	}
	return s
}

// Selector catalog, compiled once at package init.
var (
	selTwitterCardName     = sel(`meta[name="twitter:card"]`)
	selTwitterCardProperty = sel(`meta[property="twitter:card"]`)

	selTitle = selectorSet{
		sel(`meta[property="og:title"]`),
		sel(`meta[name="twitter:title"]`),
		sel(`meta[property="twitter:title"]`),
	}
	selTitleTag = sel(`title`)

	selDescription = selectorSet{
		sel(`meta[property="og:description"]`),
		sel(`meta[name="twitter:description"]`),
		sel(`meta[property="twitter:description"]`),
		sel(`meta[name="description"]`),
	}

	selThumbnail = selectorSet{
		sel(`meta[property="og:image"]`),
		sel(`meta[name="twitter:image"]`),
		sel(`meta[property="twitter:image"]`),
	}
	selThumbnailLink = selectorSet{
		sel(`link[rel="image_src"]`),
		sel(`link[rel="apple-touch-icon"]`),
	}

	selFavicon = selectorSet{
		sel(`link[rel="icon"]`),
		sel(`link[rel="shortcut icon"]`),
	}

	selSitename = selectorSet{
		sel(`meta[property="og:site_name"]`),
		sel(`meta[name="application-name"]`),
	}

	selPlayerTwitter = selectorSet{
		sel(`meta[name="twitter:player"]`),
		sel(`meta[property="twitter:player"]`),
	}
	selPlayerOG = selectorSet{
		sel(`meta[property="og:video"]`),
		sel(`meta[property="og:video:secure_url"]`),
		sel(`meta[property="og:video:url"]`),
	}
	selPlayerWidth = selectorSet{
		sel(`meta[name="twitter:player:width"]`),
		sel(`meta[property="twitter:player:width"]`),
		sel(`meta[property="og:video:width"]`),
	}
	selPlayerHeight = selectorSet{
		sel(`meta[name="twitter:player:height"]`),
		sel(`meta[property="twitter:player:height"]`),
		sel(`meta[property="og:video:height"]`),
	}

	selMixiContentRating = sel(`meta[property="mixi:content_rating"]`)
	selRating            = sel(`meta[name="rating"]`)

	selActivityPub       = sel(`link[rel="alternate"][type="application/activity+json"]`)
	selFediverseCreator  = sel(`meta[name="fediverse:creator"]`)
	selOembedLink        = sel(`link[type="application/json+oembed"]`)

	selIframe = sel(`iframe`)
)
