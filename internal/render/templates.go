package render

import "html/template"

// topnoteUnlisted is static trusted markup.
const topnoteUnlisted = template.HTML(`
<div class="topnote unlisted">
  <p>This post is currently unlisted, and is not yet ready for broad sharing.</p>
</div>
`)

var pageTemplates = template.Must(template.New("pages").Parse(`
{{define "chrome_header"}}    <div id="header">
      <h1>
        <a href="/" title="To root of site">{{.SiteTitle}}</a>
        &raquo; <a href="{{.BasePath}}/" title="To main page of blog">Blog</a>
        <a href="{{.MainFeedPath}}" title="Subscribe to feed of posts"><img src="/img/feed.svg" alt="feed icon" class="feed-icon"></a>
        <small class="subtitle">{{.SiteSubtitle}}</small>
      </h1>
    </div>

    <hr id="after-header" />
{{end}}

{{define "chrome_footer"}}    <hr id="before-footer" />

    <div id="footer">
      <p>
        {{.SiteTitle}} uses a custom static blog generator.<br />
        Feed: <a href="{{.MainFeedPath}}">all entries</a>.
      </p>
    </div>
{{end}}

{{define "comment_feed_link"}}<a href="{{.}}" title="Comment feed for this post"><img src="/img/feed-14sq.png" class="feed-icon" alt="Feed icon"></a>{{end}}

{{define "no_commenting"}}Self-service commenting is not available; follow the comment feed to see responses as they are posted.{{end}}

{{define "comments"}}{{if not .Comments}}<p>No comments yet. {{template "comment_feed_link" .FeedPath}}</p> <p>{{template "no_commenting"}}</p>{{else}}<h2>Responses: {{.Count}} so far {{template "comment_feed_link" .FeedPath}}</h2>
<ol class="commentlist">
{{range .Comments}}<li class="comment" id="comment-{{.ID}}">
  <small class="commentmetadata">
    <a href="#comment-{{.ID}}" title="Permanent link to comment" rel="bookmark">#{{.ID}}</a>
    |
    {{.ReadableDate}}
  </small>

  <p class="commentattribution"><cite>{{if .AuthorURL}}<a href="{{.AuthorURL}}" rel="external nofollow" class="url">{{.Author}}</a>{{else}}{{.Author}}{{end}}</cite> says:</p>
  <div class="commentdata userformat">{{.Content}}</div>
</li>
{{end}}</ol>
<p>{{template "no_commenting"}}</p>{{end}}{{end}}

{{define "topnote_age"}}<div class="topnote content_age">
  <p>Automated note: This post was <strong>written more than {{.}} years ago</strong>
     and may no longer reflect how its author thinks or writes. It stays
     public because old web pages deserve to stay alive.</p>
</div>
{{end}}

{{define "post"}}<!DOCTYPE html>
<html lang="en">
<head>
  <meta http-equiv="Content-Type" content="text/html; charset=UTF-8" />
  <title>{{.Title}} | {{.Chrome.SiteTitle}}</title>

  <link rel="stylesheet" href="/style/generic.css" type="text/css" />
  <link rel="stylesheet" href="/style/single.css" type="text/css" />

  <link rel="canonical" href="{{.Permalink}}" />
  <meta name="referrer" content="{{.ReferrerPolicy}}" />
</head>
<body>
  <div id="page">
{{template "chrome_header" .Chrome}}
    <div id="content">
      <div id="primary-content">
        <div class="post">
          <h2 class="post-title">
            <a href="{{.Permalink}}" rel="bookmark" title="Permanent link for post">{{.Title}}</a>
          </h2>
          {{range .Topnotes}}{{.}}{{end}}
          <div class="entrytext userformat">
            {{.Content}}
          </div>
        </div>
      </div>

      <div id="sidebar">
        {{if .AuthorName}}<div class="author">
          <h2>Author</h2>
          <p>{{.AuthorBio}}</p>
        </div>

        {{end}}<div class="postmetadata">
          <h2>Entry</h2>
          <ul>
            <li>Posted on {{.PostedDate}}</li>
            {{if .UpdatedDate}}<li>Last updated on {{.UpdatedDate}}</li>
            {{end}}<li>Tags: {{if not .Tags}}[none]{{else}}{{range $i, $t := .Tags}}{{if $i}},
{{end}}{{if $t.URL}}<a href="{{$t.URL}}" title="{{$t.Title}}">{{$t.Label}}</a>{{else}}{{$t.Label}}{{end}}{{end}}{{end}}</li>
          </ul>
        </div>
      </div>

      <hr id="after-primary" />

      <div id="secondary-content">
        <div id="comments">
          {{template "comments" .Comments}}
        </div>
      </div>
    </div>
{{template "chrome_footer" .Chrome}}
  </div>
</body>
</html>
{{end}}

{{define "multipost"}}<!DOCTYPE html>
<html lang="en">
<head>
  <meta http-equiv="Content-Type" content="text/html; charset=UTF-8" />
  <title>{{.Title}} | Blog | {{.Chrome.SiteTitle}}</title>
  {{if .Noindex}}<meta name="robots" content="noindex" />
  {{end}}
  <link rel="stylesheet" href="/style/generic.css" type="text/css" />
  <link rel="stylesheet" href="/style/posts.css" type="text/css" />

  <link rel="alternate" type="application/atom+xml" href="{{.Chrome.MainFeedPath}}" />
</head>
<body>
  <div id="page">
{{template "chrome_header" .Chrome}}
    <div id="content" class="multi-post">
      <div id="primary-content">
        {{.Intro}}
        <div class="{{.ContentClass}}">
{{range .Entries}}
<article class="post">
  <header>
    <h2><a href="{{.URL}}">{{.Title}}</a></h2>
    <p class="postmetadata">
      <span class="timestamp">{{.Timestamp}}</span> |
      <span class="comment-count">{{.CommentCount}}</span>
    </p>
  </header>
  <div class="excerpt userformat">
    {{if .HasExcerpt}}{{.Excerpt}}
<p><a href="{{.URL}}" class="more-link">Read more</a></p>{{else}}<p>(No excerpt available.)</p>{{end}}
  </div>
</article>
{{end}}
<div class="backforth">{{if .NewerURL}}<a class="later" href="{{.NewerURL}}">More recent entries</a>{{end}}{{if and .NewerURL .OlderURL}} | {{end}}{{if .OlderURL}}<a class="earlier" href="{{.OlderURL}}">Older entries</a>{{end}}</div>
        </div>
      </div>

      <div id="sidebar">
        <div class="page-state">
          <h2>{{.Title}}</h2>
          <p>{{.PageDesc}}</p>
        </div>
      </div>
    </div>
{{template "chrome_footer" .Chrome}}
  </div>
</body>
</html>
{{end}}

{{define "quicklinks"}}<!DOCTYPE html>
<html lang="en">
<head>
  <meta http-equiv="Content-Type" content="text/html; charset=UTF-8" />
  <title>{{.Title}} | Blog | {{.Chrome.SiteTitle}}</title>

  <link rel="stylesheet" href="/style/generic.css" type="text/css" />
  <link rel="stylesheet" href="/style/posts.css" type="text/css" />
</head>
<body>
  <div id="page">
{{template "chrome_header" .Chrome}}
    <div id="content" class="multi-post">
      <div id="primary-content">
        <div class="{{.ContentClass}}">
{{range .Years}}<h3>{{.Year}}</h3>
<ul>
{{range .Posts}}<li><a href="{{.URL}}">{{.Title}}</a></li>
{{end}}</ul>
{{end}}        </div>
      </div>

      <div id="sidebar">
        <div class="page-state">
          <h2>{{.Title}}</h2>
          <p>{{.PageDesc}}</p>
        </div>
      </div>
    </div>
{{template "chrome_footer" .Chrome}}
  </div>
</body>
</html>
{{end}}
`))
