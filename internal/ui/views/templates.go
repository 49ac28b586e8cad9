package views

const layoutHTML = `<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}} - doltctl</title>
<link rel="stylesheet" href="/static/app.css">
<script type="module" src="https://cdn.jsdelivr.net/gh/starfederation/datastar@v1.0.0/bundles/datastar.js"></script>
</head>
<body>
<header class="topbar">
<span class="brand">doltctl</span>
<nav>
<a href="/"{{if eq .Active "overview"}} class="active"{{end}}>Overview</a>
<a href="/history"{{if eq .Active "history"}} class="active"{{end}}>History</a>
<a href="/remotes"{{if eq .Active "remotes"}} class="active"{{end}}>Remotes</a>
</nav>
<span class="database">{{.Database}}</span>
</header>
{{with .Flash}}<div class="flash flash-{{.Kind}}">{{.Text}}</div>{{end}}
<main>
{{template "content" .}}
</main>
{{if .Dev}}<div class="sse" data-on-load="@get('/reload')"></div>{{end}}
</body>
</html>
`

const overviewHTML = `{{define "content"}}
<section class="cards">
<div class="card"><h2>Branch</h2><p class="big">{{.Data.Branch}}</p></div>
<div class="card"><h2>Database</h2><p class="big">{{.Data.Database}}</p></div>
<div class="card"><h2>Remotes</h2><p class="big">{{.Data.RemoteCount}}</p></div>
</section>
{{template "repo-status" .Data}}
<div class="sse" data-on-load="@get('/updates')"></div>
{{end}}

{{define "repo-status"}}
<div id="repo-status">
<h2>Working set</h2>
{{if .WorkingSet}}
<table>
<thead><tr><th>Table</th><th>Change</th><th></th></tr></thead>
<tbody>
{{range .WorkingSet}}
<tr>
<td><code>{{.TableName}}</code></td>
<td>{{.Status}}</td>
<td>{{if .Staged}}<span class="badge badge-staged">staged</span>{{else}}<span class="badge">unstaged</span>{{end}}</td>
</tr>
{{end}}
</tbody>
</table>
{{else}}
<p class="empty">Working set clean, nothing to commit.</p>
{{end}}
<h2>Branches</h2>
{{if .Branches}}
<table>
<thead><tr><th>Branch</th><th>Head</th><th>Last commit</th><th>Committer</th><th>Date</th></tr></thead>
<tbody>
{{range .Branches}}
<tr{{if .Current}} class="current"{{end}}>
<td>{{.Name}}{{if .Current}} <span class="badge badge-current">current</span>{{end}}</td>
<td><code>{{shortHash .Hash}}</code></td>
<td>{{firstLine .LatestMessage}}</td>
<td>{{.LatestCommitter}}</td>
<td class="when">{{when .LatestCommitDate}}</td>
</tr>
{{end}}
</tbody>
</table>
{{else}}
<p class="empty">No branches.</p>
{{end}}
</div>
{{end}}
`

const historyHTML = `{{define "content"}}
<h2>Commits</h2>
{{if .Data.Commits}}
<table>
<thead><tr><th>Hash</th><th>Message</th><th>Committer</th><th>Date</th></tr></thead>
<tbody>
{{range .Data.Commits}}
<tr>
<td><code>{{shortHash .Hash}}</code></td>
<td>{{firstLine .Message}}</td>
<td>{{.Committer}}</td>
<td class="when">{{when .Date}}</td>
</tr>
{{end}}
</tbody>
</table>
{{else}}
<p class="empty">No commits yet.</p>
{{end}}
{{end}}
`

const remotesHTML = `{{define "content"}}
<h2>Remotes</h2>
{{if .Data.Remotes}}
<table>
<thead><tr><th>Name</th><th>URL</th></tr></thead>
<tbody>
{{range .Data.Remotes}}
<tr><td><code>{{.Name}}</code></td><td>{{.URL}}</td></tr>
{{end}}
</tbody>
</table>
{{else}}
<p class="empty">No remotes configured. Add one with doltctl remote add.</p>
{{end}}
<h2>Pull</h2>
<form class="pull" method="post" action="/remotes/pull">
<label>Remote
<select name="remote">
{{range .Data.Remotes}}<option value="{{.Name}}">{{.Name}}</option>{{end}}
</select>
</label>
<label>Branch
<input type="text" name="branch" placeholder="active branch">
</label>
<label><input type="checkbox" name="fetch_only"> Fetch only</label>
<button type="submit">Pull</button>
</form>
{{end}}
`
